package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/lifebase/lifebase/internal/assistant"
	"github.com/lifebase/lifebase/internal/classifier"
	"github.com/lifebase/lifebase/internal/config"
	"github.com/lifebase/lifebase/internal/llm"
	"github.com/lifebase/lifebase/internal/memory"
	"github.com/lifebase/lifebase/internal/service"
	"github.com/lifebase/lifebase/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/lifebase/lifebase.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// currentUserID resolves the user ID for this session from flag, config, or
// environment.
func currentUserID() (string, error) {
	userID := viper.GetString("user.id")
	if userID == "" {
		userID = os.Getenv("LIFEBASE_USER")
	}
	if userID == "" {
		return "", fmt.Errorf("user ID not set: pass --user or set LIFEBASE_USER")
	}
	return userID, nil
}

// createLLMClient creates an LLM client based on configuration.
// This function is shared by multiple commands that need LLM functionality.
func createLLMClient() (llm.Client, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = "openai" // default provider
	}

	cfg := llm.Config{
		Provider:    provider,
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
	}

	switch provider {
	case "openai":
		apiKey := viper.GetString("llm.openai_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
		}
		cfg.APIKey = apiKey
	case "anthropic":
		apiKey := viper.GetString("llm.anthropic_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable")
		}
		cfg.APIKey = apiKey
	}

	return llm.NewClient(cfg)
}

// createOrchestrator wires storage, LLM, memory, and classification into an
// orchestrator ready to handle messages.
func createOrchestrator(store service.Storage, client llm.Client) (*assistant.Orchestrator, error) {
	cls, err := classifier.New(classifier.DefaultRules())
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	maxMemories := viper.GetInt("memory.max_entries")
	if maxMemories == 0 {
		maxMemories = memory.DefaultMaxEntriesPerUser
	}
	memories := memory.NewInMemoryStore(maxMemories)

	cfg := assistant.Config{
		RetryOpts: llmRetryOptions(),
	}

	return assistant.New(store, client, memories, cls, cfg), nil
}

// llmRetryOptions maps the llm.max_retries / llm.retry_delay settings onto
// the retry policy used around LLM calls.
func llmRetryOptions() service.RetryOptions {
	opts := service.RetryOptions{
		MaxAttempts:  viper.GetInt("llm.max_retries"),
		InitialDelay: viper.GetDuration("llm.retry_delay"),
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay == 0 {
		opts.InitialDelay = time.Second
	}
	return opts
}
