package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lifebase/lifebase/internal/common"
	"github.com/lifebase/lifebase/internal/model"
	"github.com/lifebase/lifebase/internal/service"
)

// CreateRecord persists a classified entry and increments the owning
// module's record counter. The insert and the counter update share one
// database transaction: either both succeed or neither does, so the counter
// never drifts from the actual record count.
func (s *SQLiteStorage) CreateRecord(ctx context.Context, record *model.RecordEntry) (*model.RecordEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	if record != nil {
		if record.InputType == "" {
			record.InputType = model.InputTypeText
		}
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if record.RecordedAt.IsZero() {
			record.RecordedAt = time.Now().UTC()
		}
		if record.CreatedAt.IsZero() {
			record.CreatedAt = time.Now().UTC()
		}
	}

	if err := validateRecord(record); err != nil {
		return nil, err
	}

	tagsJSON, err := json.Marshal(record.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", common.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	insertQuery := `
		INSERT INTO records (id, user_id, module_id, input_type, content, image_url, amount, category, subcategory, ai_analysis, tags, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, insertQuery,
		record.ID, record.UserID, nullString(record.ModuleID), record.InputType,
		record.Content, nullString(record.ImageURL), nullFloat(record.Amount),
		record.Category, record.Subcategory, record.AIAnalysis, string(tagsJSON),
		record.RecordedAt, record.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("%w: failed to insert record: %v", common.ErrStoreUnavailable, err)
	}

	if record.ModuleID != "" {
		countQuery := `UPDATE modules SET record_count = record_count + 1, updated_at = ? WHERE id = ?`
		result, execErr := tx.ExecContext(ctx, countQuery, time.Now().UTC(), record.ModuleID)
		if execErr != nil {
			return nil, fmt.Errorf("%w: failed to increment record count: %v", common.ErrStoreUnavailable, execErr)
		}
		rows, raErr := result.RowsAffected()
		if raErr != nil {
			return nil, fmt.Errorf("failed to check count update: %w", raErr)
		}
		if rows == 0 {
			return nil, fmt.Errorf("%w: module %s", common.ErrNotFound, record.ModuleID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit record: %v", common.ErrStoreUnavailable, err)
	}

	slog.Debug("created record",
		"record_id", record.ID,
		"module_id", record.ModuleID,
		"category", record.Category)
	return record, nil
}

const recordColumns = `id, user_id, module_id, input_type, content, image_url, amount, category, subcategory, ai_analysis, tags, recorded_at, created_at`

// GetRecordsByModule returns a module's records, most recent first.
func (s *SQLiteStorage) GetRecordsByModule(ctx context.Context, userID, moduleID string, limit int) ([]model.RecordEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(userID); err != nil {
		return nil, err
	}
	if err := validateString(moduleID, "moduleID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = ? AND module_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?`

	return s.queryRecords(ctx, query, userID, moduleID, normalizeLimit(limit))
}

// GetRecentRecords returns a user's records across all modules, most recent first.
func (s *SQLiteStorage) GetRecentRecords(ctx context.Context, userID string, limit int) ([]model.RecordEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(userID); err != nil {
		return nil, err
	}

	query := `SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?`

	return s.queryRecords(ctx, query, userID, normalizeLimit(limit))
}

// GetRecordStats aggregates a user's records since the given time.
// Spending sums amounts below zero, income sums amounts above zero.
func (s *SQLiteStorage) GetRecordStats(ctx context.Context, userID string, since time.Time) (*service.RecordStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateOwner(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0),
			COUNT(*)
		FROM records
		WHERE user_id = ? AND recorded_at >= ?`

	var stats service.RecordStats
	if err := s.db.QueryRowContext(ctx, query, userID, since).Scan(
		&stats.TotalSpending, &stats.TotalIncome, &stats.RecordCount,
	); err != nil {
		return nil, fmt.Errorf("%w: failed to query record stats: %v", common.ErrStoreUnavailable, err)
	}
	return &stats, nil
}

func (s *SQLiteStorage) queryRecords(ctx context.Context, query string, args ...any) ([]model.RecordEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query records: %v", common.ErrStoreUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.RecordEntry
	for rows.Next() {
		var r model.RecordEntry
		var moduleID, imageURL, content, category, subcategory, analysis, tags sql.NullString
		var amount sql.NullFloat64

		if err := rows.Scan(
			&r.ID, &r.UserID, &moduleID, &r.InputType, &content, &imageURL,
			&amount, &category, &subcategory, &analysis, &tags,
			&r.RecordedAt, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		r.ModuleID = moduleID.String
		r.ImageURL = imageURL.String
		r.Content = content.String
		r.Category = category.String
		r.Subcategory = subcategory.String
		r.AIAnalysis = analysis.String
		if amount.Valid {
			v := amount.Float64
			r.Amount = &v
		}
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &r.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal record tags: %w", err)
			}
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
