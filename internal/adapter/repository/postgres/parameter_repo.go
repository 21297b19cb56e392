package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// parameterRepository implements domain.ParameterRepository
type parameterRepository struct {
	db *DB
}

// NewParameterRepository creates a new parameter repository
func NewParameterRepository(db *DB) domain.ParameterRepository {
	return &parameterRepository{db: db}
}

// SaveOverride upserts the override at (path, priority)
func (r *parameterRepository) SaveOverride(ctx context.Context, param *domain.Parameter) error {
	query := `
		INSERT INTO parameter_overrides (path, value, source_priority, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (path, source_priority)
		DO UPDATE SET value = EXCLUDED.value, reason = EXCLUDED.reason, created_at = EXCLUDED.created_at
	`

	_, err := r.db.ExecContext(ctx, query,
		param.Path,
		param.Value.String(),
		param.SourcePriority,
		param.Reason,
		param.Timestamp,
	)
	if err != nil {
		return domain.NewPersistenceError("save parameter override", err)
	}

	return nil
}

// DeleteOverride removes the override at (path, priority)
func (r *parameterRepository) DeleteOverride(ctx context.Context, path string, priority int) error {
	query := `DELETE FROM parameter_overrides WHERE path = $1 AND source_priority = $2`

	if _, err := r.db.ExecContext(ctx, query, path, priority); err != nil {
		return domain.NewPersistenceError("delete parameter override", err)
	}

	return nil
}

// ListOverrides retrieves every stored override
func (r *parameterRepository) ListOverrides(ctx context.Context) ([]*domain.Parameter, error) {
	query := `
		SELECT path, value, source_priority, reason, created_at
		FROM parameter_overrides
		ORDER BY path, source_priority
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewPersistenceError("list parameter overrides", err)
	}
	defer rows.Close()

	var overrides []*domain.Parameter
	for rows.Next() {
		var param domain.Parameter
		var valueStr string

		err := rows.Scan(
			&param.Path,
			&valueStr,
			&param.SourcePriority,
			&param.Reason,
			&param.Timestamp,
		)
		if err != nil {
			return nil, domain.NewPersistenceError("list parameter overrides", err)
		}

		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse parameter value: %w", err)
		}
		param.Value = value

		overrides = append(overrides, &param)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("list parameter overrides", err)
	}

	return overrides, nil
}

// AppendHistory stores one immutable audit record. History rows are
// append-only: never updated, never deleted.
func (r *parameterRepository) AppendHistory(ctx context.Context, entry *domain.ParameterHistoryEntry) error {
	query := `
		INSERT INTO parameter_history (path, old_value, new_value, source_priority, reason, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var oldValue interface{}
	if entry.OldValue != nil {
		oldValue = entry.OldValue.String()
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.Path,
		oldValue,
		entry.NewValue.String(),
		entry.SourcePriority,
		entry.Reason,
		entry.Source,
		entry.Timestamp,
	)
	if err != nil {
		return domain.NewPersistenceError("append parameter history", err)
	}

	return nil
}

// ListHistory retrieves the full audit trail, oldest first
func (r *parameterRepository) ListHistory(ctx context.Context) ([]*domain.ParameterHistoryEntry, error) {
	query := `
		SELECT path, old_value, new_value, source_priority, reason, source, created_at
		FROM parameter_history
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewPersistenceError("list parameter history", err)
	}
	defer rows.Close()

	var history []*domain.ParameterHistoryEntry
	for rows.Next() {
		var entry domain.ParameterHistoryEntry
		var oldValueStr sql.NullString
		var newValueStr string

		err := rows.Scan(
			&entry.Path,
			&oldValueStr,
			&newValueStr,
			&entry.SourcePriority,
			&entry.Reason,
			&entry.Source,
			&entry.Timestamp,
		)
		if err != nil {
			return nil, domain.NewPersistenceError("list parameter history", err)
		}

		if oldValueStr.Valid {
			oldValue, err := decimal.NewFromString(oldValueStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse old parameter value: %w", err)
			}
			entry.OldValue = &oldValue
		}

		newValue, err := decimal.NewFromString(newValueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse new parameter value: %w", err)
		}
		entry.NewValue = newValue

		history = append(history, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("list parameter history", err)
	}

	return history, nil
}
