// Package testutil provides test utilities with proper isolation for
// storage-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/lifebase/lifebase/internal/model"
	"github.com/lifebase/lifebase/internal/service"
	"github.com/lifebase/lifebase/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	Modules map[model.ModuleType]*model.Module
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database, optionally seeded with
// modules for the given user. It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, "user-1", model.ModuleTypeDiet, model.ModuleTypeSpending)
func SetupTestDB(t *testing.T, userID string, moduleTypes ...model.ModuleType) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	modules := make(map[model.ModuleType]*model.Module, len(moduleTypes))
	for _, mt := range moduleTypes {
		mod, err := store.EnsureModule(ctx, userID, mt)
		if err != nil {
			t.Fatalf("failed to seed module %q: %v", mt, err)
		}
		modules[mt] = mod
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		Modules: modules,
		t:       t,
	}
}

// MustGetModule returns the seeded module of the given type or fails the test.
func (db *TestDB) MustGetModule(mt model.ModuleType) *model.Module {
	db.t.Helper()
	mod, ok := db.Modules[mt]
	if !ok {
		db.t.Fatalf("module %q was not seeded", mt)
	}
	return mod
}

