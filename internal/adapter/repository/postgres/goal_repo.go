package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{db: db}
}

const goalColumns = `
	id, profile_id, category, title, target_amount, current_amount, timeframe,
	importance, flexibility, notes, current_progress, priority_score,
	success_probability, funding_strategy, created_at, updated_at
`

// Create persists a new goal
func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	strategy, err := fundingStrategyValue(goal)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		goal.ID,
		goal.ProfileID,
		string(goal.Category),
		goal.Title,
		goal.TargetAmount.String(),
		goal.CurrentAmount.String(),
		goal.Timeframe,
		string(goal.Importance),
		string(goal.Flexibility),
		goal.Notes,
		goal.CurrentProgress,
		goal.PriorityScore,
		goal.SuccessProbability,
		strategy,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("create goal", err)
	}

	return nil
}

// GetByID retrieves a goal by its ID
func (r *goalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("goal", id.String())
		}
		return nil, domain.NewPersistenceError("get goal by id", err)
	}

	return goal, nil
}

// Update persists the current state of a goal
func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET category = $2, title = $3, target_amount = $4, current_amount = $5,
		    timeframe = $6, importance = $7, flexibility = $8, notes = $9,
		    current_progress = $10, priority_score = $11, success_probability = $12,
		    funding_strategy = $13, updated_at = $14
		WHERE id = $1
	`

	strategy, err := fundingStrategyValue(goal)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query,
		goal.ID,
		string(goal.Category),
		goal.Title,
		goal.TargetAmount.String(),
		goal.CurrentAmount.String(),
		goal.Timeframe,
		string(goal.Importance),
		string(goal.Flexibility),
		goal.Notes,
		goal.CurrentProgress,
		goal.PriorityScore,
		goal.SuccessProbability,
		strategy,
		goal.UpdatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("update goal", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError("update goal", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("goal", goal.ID.String())
	}

	return nil
}

// Delete removes a goal by its ID
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return domain.NewPersistenceError("delete goal", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError("delete goal", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("goal", id.String())
	}

	return nil
}

// ListByProfile retrieves all goals owned by a profile
func (r *goalRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE profile_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, domain.NewPersistenceError("list goals by profile", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, domain.NewPersistenceError("list goals by profile", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("list goals by profile", err)
	}

	return goals, nil
}

// DeleteByProfile removes all goals owned by a profile
func (r *goalRepository) DeleteByProfile(ctx context.Context, profileID uuid.UUID) error {
	query := `DELETE FROM goals WHERE profile_id = $1`

	if _, err := r.db.ExecContext(ctx, query, profileID); err != nil {
		return domain.NewPersistenceError("delete goals by profile", err)
	}

	return nil
}

// fundingStrategyValue serializes a goal's funding strategy for storage;
// an unset strategy stores as NULL.
func fundingStrategyValue(goal *domain.Goal) (interface{}, error) {
	if goal.FundingStrategy.IsZero() {
		return nil, nil
	}
	raw, err := json.Marshal(goal.FundingStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal funding strategy: %w", err)
	}
	return raw, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal
	var category, importance, flexibility string
	var targetStr, currentStr string
	var strategyRaw []byte

	err := row.Scan(
		&goal.ID,
		&goal.ProfileID,
		&category,
		&goal.Title,
		&targetStr,
		&currentStr,
		&goal.Timeframe,
		&importance,
		&flexibility,
		&goal.Notes,
		&goal.CurrentProgress,
		&goal.PriorityScore,
		&goal.SuccessProbability,
		&strategyRaw,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	goal.Category = domain.Category(category)
	goal.Importance = domain.Importance(importance)
	goal.Flexibility = domain.Flexibility(flexibility)

	target, err := decimal.NewFromString(targetStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target_amount: %w", err)
	}
	goal.TargetAmount = target

	current, err := decimal.NewFromString(currentStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current_amount: %w", err)
	}
	goal.CurrentAmount = current

	if len(strategyRaw) > 0 {
		if err := json.Unmarshal(strategyRaw, &goal.FundingStrategy); err != nil {
			return nil, fmt.Errorf("failed to unmarshal funding strategy: %w", err)
		}
	}

	return &goal, nil
}
