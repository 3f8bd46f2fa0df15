package model

import "time"

// InputType indicates how a record entered the system.
type InputType string

// Input type constants.
const (
	InputTypeText  InputType = "text"
	InputTypePhoto InputType = "photo"
	InputTypeVoice InputType = "voice"
)

// RecordEntry represents one classified, persisted life-log entry.
// Records are immutable once written; the core defines no update or delete
// operations for them.
//
// Amount carries the polarity convention: negative for expenses, positive
// for income, nil when no monetary value was extracted.
type RecordEntry struct {
	RecordedAt  time.Time
	CreatedAt   time.Time
	Amount      *float64
	ID          string
	UserID      string
	ModuleID    string
	InputType   InputType
	Content     string
	ImageURL    string
	Category    string
	Subcategory string
	AIAnalysis  string // opaque structured payload, stored verbatim
	Tags        []string
}
