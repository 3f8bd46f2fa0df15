package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/model"
)

// EnsureModule returns the module for (userID, moduleType), creating it on
// first use and reactivating it if hidden or inactive. The call is
// idempotent: an existing active module is returned unchanged.
//
// Creation is race-safe. If two callers race to create the same module, the
// UNIQUE(user_id, module_type) constraint lets exactly one insert succeed;
// the loser reads back and returns the winner's row instead of failing.
func (s *SQLiteStorage) EnsureModule(ctx context.Context, userID string, moduleType model.ModuleType) (*model.Module, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(userID); err != nil {
		return nil, err
	}
	if err := validateModuleType(moduleType); err != nil {
		return nil, err
	}

	existing, err := s.GetModule(ctx, userID, moduleType)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return s.reactivateIfNeeded(ctx, existing)
	}

	now := time.Now().UTC()
	module := &model.Module{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        moduleType,
		DisplayName: moduleType.DefaultDisplayName(),
		Icon:        moduleType.DefaultIcon(),
		IsActive:    true,
		RecordCount: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	insertQuery := `
		INSERT INTO modules (id, user_id, module_type, display_name, icon, is_active, is_hidden, record_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, 0, 0, ?, ?)
		ON CONFLICT(user_id, module_type) DO NOTHING`

	result, err := s.db.ExecContext(ctx, insertQuery,
		module.ID, module.UserID, module.Type, module.DisplayName, module.Icon,
		module.CreatedAt, module.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create module: %v", common.ErrStoreUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check module insert: %v", common.ErrStoreUnavailable, err)
	}

	if rows == 0 {
		// Lost the creation race; return the winner's row.
		winner, getErr := s.GetModule(ctx, userID, moduleType)
		if getErr != nil {
			return nil, getErr
		}
		return s.reactivateIfNeeded(ctx, winner)
	}

	slog.Info("created module", "user_id", userID, "module_type", moduleType)
	return module, nil
}

// reactivateIfNeeded flips a hidden or inactive module back to active.
func (s *SQLiteStorage) reactivateIfNeeded(ctx context.Context, module *model.Module) (*model.Module, error) {
	if module.IsActive && !module.IsHidden {
		return module, nil
	}

	now := time.Now().UTC()
	updateQuery := `
		UPDATE modules
		SET is_active = 1, is_hidden = 0, updated_at = ?
		WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, updateQuery, now, module.ID); err != nil {
		return nil, fmt.Errorf("%w: failed to reactivate module: %v", common.ErrStoreUnavailable, err)
	}

	module.IsActive = true
	module.IsHidden = false
	module.UpdatedAt = now
	slog.Info("reactivated module", "user_id", module.UserID, "module_type", module.Type)
	return module, nil
}

const moduleColumns = `id, user_id, module_type, display_name, icon, is_active, is_hidden, record_count, created_at, updated_at`

// GetModule returns the module for (userID, moduleType), or ErrNotFound.
func (s *SQLiteStorage) GetModule(ctx context.Context, userID string, moduleType model.ModuleType) (*model.Module, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(userID); err != nil {
		return nil, err
	}

	query := `SELECT ` + moduleColumns + ` FROM modules WHERE user_id = ? AND module_type = ?`

	module, err := scanModule(s.db.QueryRowContext(ctx, query, userID, moduleType))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: module %s/%s", common.ErrNotFound, userID, moduleType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query module: %v", common.ErrStoreUnavailable, err)
	}
	return module, nil
}

// GetModuleByID returns a module by its id, or ErrNotFound.
func (s *SQLiteStorage) GetModuleByID(ctx context.Context, id string) (*model.Module, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + moduleColumns + ` FROM modules WHERE id = ?`

	module, err := scanModule(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: module %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query module: %v", common.ErrStoreUnavailable, err)
	}
	return module, nil
}

// ListModules returns a user's modules in creation order. Hidden modules are
// excluded unless includeHidden is set.
func (s *SQLiteStorage) ListModules(ctx context.Context, userID string, includeHidden bool) ([]model.Module, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(userID); err != nil {
		return nil, err
	}

	query := `SELECT ` + moduleColumns + ` FROM modules WHERE user_id = ?`
	if !includeHidden {
		query += ` AND is_hidden = 0`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query modules: %v", common.ErrStoreUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var modules []model.Module
	for rows.Next() {
		module, scanErr := scanModule(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan module: %w", scanErr)
		}
		modules = append(modules, *module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating modules: %w", err)
	}

	slog.Debug("retrieved modules", "user_id", userID, "count", len(modules))
	return modules, nil
}

// HideModule soft-hides a module. Modules are never hard-deleted; hidden
// modules come back through EnsureModule on the next detection.
func (s *SQLiteStorage) HideModule(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	query := `UPDATE modules SET is_hidden = 1, updated_at = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: failed to hide module: %v", common.ErrStoreUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check hide result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: module %s", common.ErrNotFound, id)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanModule(row rowScanner) (*model.Module, error) {
	var m model.Module
	var icon sql.NullString
	if err := row.Scan(
		&m.ID, &m.UserID, &m.Type, &m.DisplayName, &icon,
		&m.IsActive, &m.IsHidden, &m.RecordCount, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m.Icon = icon.String
	return &m, nil
}
