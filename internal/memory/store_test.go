package memory

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebase/lifebase/internal/model"
)

func TestAddMemory(t *testing.T) {
	store := NewInMemoryStore(10)

	entry := store.AddMemory("user-1", model.MemoryTypeUserData, "午餐花了38元", 0.5, []string{"diet"})

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "user-1", entry.UserID)
	assert.Equal(t, model.MemoryTypeUserData, entry.Type)
	assert.Equal(t, "午餐花了38元", entry.Content)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestAddMemory_UniqueIDs(t *testing.T) {
	store := NewInMemoryStore(10)

	a := store.AddMemory("user-1", model.MemoryTypeUserData, "a", 0.5, nil)
	b := store.AddMemory("user-1", model.MemoryTypeUserData, "b", 0.5, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAddMemory_FIFOEviction(t *testing.T) {
	store := NewInMemoryStore(3)

	for i := 0; i < 5; i++ {
		store.AddMemory("user-1", model.MemoryTypeUserData, fmt.Sprintf("entry %d", i), 0.5, nil)
	}

	stats := store.UserStats("user-1")
	assert.Equal(t, 3, stats.TotalEntries)

	// The oldest two entries were evicted.
	recent := store.GetRecentMemories("user-1", 0)
	require.Len(t, recent, 3)
	assert.Equal(t, "entry 4", recent[0].Content)
	assert.Equal(t, "entry 2", recent[2].Content)
}

func TestGetRecentMemories_RecentFirst(t *testing.T) {
	store := NewInMemoryStore(0)

	for i := 0; i < 4; i++ {
		store.AddMemory("user-1", model.MemoryTypeUserData, fmt.Sprintf("entry %d", i), 0.5, nil)
	}

	recent := store.GetRecentMemories("user-1", 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "entry 3", recent[0].Content)
	assert.Equal(t, "entry 2", recent[1].Content)

	assert.Nil(t, store.GetRecentMemories("unknown-user", 5))
}

func TestGetImportantMemories(t *testing.T) {
	store := NewInMemoryStore(0)

	store.AddMemory("user-1", model.MemoryTypeUserData, "low", 0.2, nil)
	store.AddMemory("user-1", model.MemoryTypeGoal, "high", 0.9, nil)
	store.AddMemory("user-1", model.MemoryTypeInsight, "mid", 0.6, nil)

	important := store.GetImportantMemories("user-1", 0.5)
	require.Len(t, important, 2)
	assert.Equal(t, "high", important[0].Content)
	assert.Equal(t, "mid", important[1].Content)
}

func TestGetMemoriesByType(t *testing.T) {
	store := NewInMemoryStore(0)

	store.AddMemory("user-1", model.MemoryTypeUserData, "data 1", 0.5, nil)
	store.AddMemory("user-1", model.MemoryTypeGoal, "goal 1", 0.5, nil)
	store.AddMemory("user-1", model.MemoryTypeUserData, "data 2", 0.5, nil)

	data := store.GetMemoriesByType("user-1", model.MemoryTypeUserData)
	require.Len(t, data, 2)
	assert.Equal(t, "data 1", data[0].Content)
	assert.Equal(t, "data 2", data[1].Content)

	goals := store.GetMemoriesByType("user-1", model.MemoryTypeGoal)
	assert.Len(t, goals, 1)
}

func TestSearchMemories(t *testing.T) {
	store := NewInMemoryStore(0)

	store.AddMemory("user-1", model.MemoryTypeUserData, "午餐吃了牛肉面", 0.5, nil)
	store.AddMemory("user-1", model.MemoryTypeUserData, "晚餐吃了饺子", 0.5, nil)
	store.AddMemory("user-1", model.MemoryTypeUserData, "Morning GYM session", 0.5, nil)

	assert.Len(t, store.SearchMemories("user-1", "吃了"), 2)
	assert.Len(t, store.SearchMemories("user-1", "gym"), 1)
	assert.Empty(t, store.SearchMemories("user-1", "啤酒"))
}

func TestGenerateMemorySummary(t *testing.T) {
	store := NewInMemoryStore(0)

	assert.Empty(t, store.GenerateMemorySummary("user-1"))

	store.AddMemory("user-1", model.MemoryTypeUserData, "data 1", 0.5, nil)
	store.AddMemory("user-1", model.MemoryTypeUserData, "data 2", 0.5, nil)
	store.AddMemory("user-1", model.MemoryTypeGoal, "存钱", 0.9, nil)

	assert.Equal(t, "用户记忆摘要：数据2条，目标1个", store.GenerateMemorySummary("user-1"))
}

func TestClearUserMemory(t *testing.T) {
	store := NewInMemoryStore(0)

	store.AddMemory("user-1", model.MemoryTypeUserData, "a", 0.5, nil)
	store.AddMemory("user-2", model.MemoryTypeUserData, "b", 0.5, nil)

	store.ClearUserMemory("user-1")

	assert.Equal(t, 0, store.UserStats("user-1").TotalEntries)
	assert.Equal(t, 1, store.UserStats("user-2").TotalEntries)
}

func TestExportMemory(t *testing.T) {
	store := NewInMemoryStore(0)

	data, err := store.ExportMemory("unknown-user")
	require.NoError(t, err)
	assert.Empty(t, data)

	store.AddMemory("user-1", model.MemoryTypeUserData, "午餐花了38元", 0.5, []string{"diet"})

	data, err = store.ExportMemory("user-1")
	require.NoError(t, err)

	var entries []model.MemoryEntry
	require.NoError(t, json.Unmarshal([]byte(data), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "午餐花了38元", entries[0].Content)
}

func TestAddMemory_ConcurrentWritersLoseNothing(t *testing.T) {
	store := NewInMemoryStore(0)

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				store.AddMemory("user-1", model.MemoryTypeUserData, fmt.Sprintf("w%d-%d", w, i), 0.5, nil)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, store.UserStats("user-1").TotalEntries)
}
