package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLLMRetryOptions_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	opts := llmRetryOptions()

	assert.Equal(t, 3, opts.MaxAttempts)
	assert.Equal(t, time.Second, opts.InitialDelay)
}

func TestLLMRetryOptions_FromConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("llm.max_retries", 5)
	viper.Set("llm.retry_delay", "250ms")

	opts := llmRetryOptions()

	assert.Equal(t, 5, opts.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, opts.InitialDelay)
}
