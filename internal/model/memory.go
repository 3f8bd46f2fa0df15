package model

import "time"

// MemoryType categorizes entries in the in-process memory store.
type MemoryType string

// Memory type constants.
const (
	MemoryTypeUserData     MemoryType = "user_data"
	MemoryTypeConversation MemoryType = "conversation"
	MemoryTypePreference   MemoryType = "preference"
	MemoryTypeGoal         MemoryType = "goal"
	MemoryTypeInsight      MemoryType = "insight"
)

// MemoryEntry is one item in a user's in-process memory log.
// Importance is a float in [0,1] used for threshold queries only.
type MemoryEntry struct {
	Timestamp  time.Time
	ID         string
	UserID     string
	Type       MemoryType
	Content    string
	Tags       []string
	Importance float64
}
