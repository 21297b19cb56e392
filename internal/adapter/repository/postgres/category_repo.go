package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// categoryRepository implements domain.CategoryRepository
type categoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create persists a new category. is_foundation is written as a derived
// column for older readers of the table; hierarchy_level is authoritative.
func (r *categoryRepository) Create(ctx context.Context, category *domain.GoalCategory) error {
	query := `
		INSERT INTO goal_categories (id, name, description, order_index, hierarchy_level, parent_id, is_foundation)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var parentID interface{}
	if category.ParentID != nil {
		parentID = category.ParentID
	}

	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.OrderIndex,
		int(category.HierarchyLevel),
		parentID,
		category.IsFoundation(),
	)
	if err != nil {
		return domain.NewPersistenceError("create category", err)
	}

	return nil
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
	query := `
		SELECT id, name, description, order_index, hierarchy_level, parent_id
		FROM goal_categories
		WHERE id = $1
	`

	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("category", id.String())
		}
		return nil, domain.NewPersistenceError("get category by id", err)
	}

	return category, nil
}

// List retrieves the full catalogue ordered by hierarchy level then order index
func (r *categoryRepository) List(ctx context.Context) ([]*domain.GoalCategory, error) {
	query := `
		SELECT id, name, description, order_index, hierarchy_level, parent_id
		FROM goal_categories
		ORDER BY hierarchy_level, order_index
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewPersistenceError("list categories", err)
	}
	defer rows.Close()

	var categories []*domain.GoalCategory
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, domain.NewPersistenceError("list categories", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewPersistenceError("list categories", err)
	}

	return categories, nil
}

func scanCategory(row rowScanner) (*domain.GoalCategory, error) {
	var category domain.GoalCategory
	var level int
	var parentID sql.NullString

	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.OrderIndex,
		&level,
		&parentID,
	)
	if err != nil {
		return nil, err
	}

	category.HierarchyLevel = domain.HierarchyLevel(level)

	if parentID.Valid {
		parentUUID, err := uuid.Parse(parentID.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse parent_id: %w", err)
		}
		category.ParentID = &parentUUID
	}

	return &category, nil
}
