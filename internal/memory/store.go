// Package memory implements the in-process memory store used to build
// conversational context. The store is explicitly transient: it lives for
// the process lifetime only and makes no durability promise, unlike the
// persisted module/record store.
package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lifebase/lifebase/internal/model"
)

// DefaultMaxEntriesPerUser caps each user's log before FIFO eviction kicks in.
const DefaultMaxEntriesPerUser = 1000

// Store is the capability surface for per-user memory logs.
type Store interface {
	AddMemory(userID string, memType model.MemoryType, content string, importance float64, tags []string) model.MemoryEntry
	GetRecentMemories(userID string, limit int) []model.MemoryEntry
	GetImportantMemories(userID string, threshold float64) []model.MemoryEntry
	GetMemoriesByType(userID string, memType model.MemoryType) []model.MemoryEntry
	SearchMemories(userID, query string) []model.MemoryEntry
	GenerateMemorySummary(userID string) string
	UserStats(userID string) Stats
	ClearUserMemory(userID string)
	ExportMemory(userID string) (string, error)
}

// Stats summarizes one user's memory log.
type Stats struct {
	LastUpdated  time.Time
	TotalEntries int
}

// userMemory holds one user's append-only entry log.
type userMemory struct {
	lastUpdated time.Time
	entries     []model.MemoryEntry
}

// InMemoryStore implements Store with a mutex-guarded per-user map.
// Appends for the same user serialize on the store mutex, so concurrent
// writers cannot lose entries.
type InMemoryStore struct {
	users      map[string]*userMemory
	maxEntries int
	seq        int64
	mu         sync.RWMutex
}

// NewInMemoryStore creates a store with the given per-user entry cap.
// A cap of zero or less uses DefaultMaxEntriesPerUser.
func NewInMemoryStore(maxEntriesPerUser int) *InMemoryStore {
	if maxEntriesPerUser <= 0 {
		maxEntriesPerUser = DefaultMaxEntriesPerUser
	}
	return &InMemoryStore{
		users:      make(map[string]*userMemory),
		maxEntries: maxEntriesPerUser,
	}
}

// AddMemory appends an entry to the user's log, evicting the oldest entries
// once the cap is exceeded.
func (s *InMemoryStore) AddMemory(userID string, memType model.MemoryType, content string, importance float64, tags []string) model.MemoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	um, ok := s.users[userID]
	if !ok {
		um = &userMemory{}
		s.users[userID] = um
	}

	s.seq++
	now := time.Now().UTC()
	entry := model.MemoryEntry{
		ID:         fmt.Sprintf("%s_%d", userID, s.seq),
		UserID:     userID,
		Timestamp:  now,
		Type:       memType,
		Content:    content,
		Importance: importance,
		Tags:       append([]string(nil), tags...),
	}

	um.entries = append(um.entries, entry)
	um.lastUpdated = now

	if len(um.entries) > s.maxEntries {
		um.entries = um.entries[len(um.entries)-s.maxEntries:]
	}

	return entry
}

// GetRecentMemories returns the last limit entries, most recent first.
func (s *InMemoryStore) GetRecentMemories(userID string, limit int) []model.MemoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	um, ok := s.users[userID]
	if !ok {
		return nil
	}

	if limit <= 0 || limit > len(um.entries) {
		limit = len(um.entries)
	}

	recent := make([]model.MemoryEntry, 0, limit)
	for i := len(um.entries) - 1; i >= len(um.entries)-limit; i-- {
		recent = append(recent, um.entries[i])
	}
	return recent
}

// GetImportantMemories returns entries at or above the importance
// threshold, most important first.
func (s *InMemoryStore) GetImportantMemories(userID string, threshold float64) []model.MemoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	um, ok := s.users[userID]
	if !ok {
		return nil
	}

	var important []model.MemoryEntry
	for _, e := range um.entries {
		if e.Importance >= threshold {
			important = append(important, e)
		}
	}

	sort.SliceStable(important, func(i, j int) bool {
		return important[i].Importance > important[j].Importance
	})
	return important
}

// GetMemoriesByType returns entries of one type in append order.
func (s *InMemoryStore) GetMemoriesByType(userID string, memType model.MemoryType) []model.MemoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	um, ok := s.users[userID]
	if !ok {
		return nil
	}

	var matched []model.MemoryEntry
	for _, e := range um.entries {
		if e.Type == memType {
			matched = append(matched, e)
		}
	}
	return matched
}

// SearchMemories returns entries whose content contains the query,
// case-insensitively, in append order.
func (s *InMemoryStore) SearchMemories(userID, query string) []model.MemoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	um, ok := s.users[userID]
	if !ok {
		return nil
	}

	lowerQuery := strings.ToLower(query)
	var matched []model.MemoryEntry
	for _, e := range um.entries {
		if strings.Contains(strings.ToLower(e.Content), lowerQuery) {
			matched = append(matched, e)
		}
	}
	return matched
}

// GenerateMemorySummary is a cheap deterministic aggregate of the user's
// log: counts by type, no model calls.
func (s *InMemoryStore) GenerateMemorySummary(userID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	um, ok := s.users[userID]
	if !ok {
		return ""
	}

	var dataCount, goalCount int
	for _, e := range um.entries {
		switch e.Type {
		case model.MemoryTypeUserData:
			dataCount++
		case model.MemoryTypeGoal:
			goalCount++
		}
	}

	return fmt.Sprintf("用户记忆摘要：数据%d条，目标%d个", dataCount, goalCount)
}

// UserStats returns the entry count and last update time for a user.
func (s *InMemoryStore) UserStats(userID string) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	um, ok := s.users[userID]
	if !ok {
		return Stats{}
	}
	return Stats{
		TotalEntries: len(um.entries),
		LastUpdated:  um.lastUpdated,
	}
}

// ClearUserMemory drops a user's entire log.
func (s *InMemoryStore) ClearUserMemory(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// ExportMemory serializes a user's log as indented JSON.
func (s *InMemoryStore) ExportMemory(userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	um, ok := s.users[userID]
	if !ok {
		return "", nil
	}

	data, err := json.MarshalIndent(um.entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export memory: %w", err)
	}
	return string(data), nil
}
