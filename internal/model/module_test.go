package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleTypeIsValid(t *testing.T) {
	for _, mt := range ValidModuleTypes() {
		assert.True(t, mt.IsValid(), "type %s should be valid", mt)
	}

	assert.False(t, ModuleType("").IsValid())
	assert.False(t, ModuleType("finance").IsValid())
	assert.False(t, ModuleType("Spending").IsValid())
}

func TestDefaultDisplayName(t *testing.T) {
	assert.Equal(t, "消费", ModuleTypeSpending.DefaultDisplayName())
	assert.Equal(t, "饮食", ModuleTypeDiet.DefaultDisplayName())

	// Custom modules fall back to the raw type string.
	assert.Equal(t, "custom", ModuleTypeCustom.DefaultDisplayName())
}

func TestDefaultIcon(t *testing.T) {
	assert.Equal(t, "💸", ModuleTypeSpending.DefaultIcon())
	assert.Equal(t, "📦", ModuleTypeCustom.DefaultIcon())
}
