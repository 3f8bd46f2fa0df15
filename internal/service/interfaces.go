// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/lifebase/lifebase/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Module operations
	EnsureModule(ctx context.Context, userID string, moduleType model.ModuleType) (*model.Module, error)
	GetModule(ctx context.Context, userID string, moduleType model.ModuleType) (*model.Module, error)
	GetModuleByID(ctx context.Context, id string) (*model.Module, error)
	ListModules(ctx context.Context, userID string, includeHidden bool) ([]model.Module, error)
	HideModule(ctx context.Context, id string) error

	// Record operations
	CreateRecord(ctx context.Context, record *model.RecordEntry) (*model.RecordEntry, error)
	GetRecordsByModule(ctx context.Context, userID, moduleID string, limit int) ([]model.RecordEntry, error)
	GetRecentRecords(ctx context.Context, userID string, limit int) ([]model.RecordEntry, error)
	GetRecordStats(ctx context.Context, userID string, since time.Time) (*RecordStats, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
}

// RecordStats contains aggregate information over a user's records.
type RecordStats struct {
	TotalSpending float64
	TotalIncome   float64
	RecordCount   int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
