package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines the interface for profile persistence operations
type ProfileRepository interface {
	// Create persists a new profile
	Create(ctx context.Context, profile *Profile) error

	// GetByID retrieves a profile by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// Update persists the current state of a profile
	Update(ctx context.Context, profile *Profile) error

	// Delete removes a profile. Goal cascade is the service's job so the
	// cache and the goals table stay consistent.
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendVersion stores an immutable full snapshot in the version ledger
	AppendVersion(ctx context.Context, snapshot *Profile, entry VersionEntry) error
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	// Create persists a new goal
	Create(ctx context.Context, goal *Goal) error

	// GetByID retrieves a goal by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Goal, error)

	// Update persists the current state of a goal
	Update(ctx context.Context, goal *Goal) error

	// Delete removes a goal by its ID
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByProfile retrieves all goals owned by a profile
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*Goal, error)

	// DeleteByProfile removes all goals owned by a profile
	DeleteByProfile(ctx context.Context, profileID uuid.UUID) error
}

// CategoryRepository defines the interface for goal-category persistence
type CategoryRepository interface {
	// Create persists a new category
	Create(ctx context.Context, category *GoalCategory) error

	// GetByID retrieves a category by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*GoalCategory, error)

	// List retrieves the full catalogue ordered by hierarchy level then
	// order index
	List(ctx context.Context) ([]*GoalCategory, error)
}

// ParameterRepository defines the interface for parameter persistence.
// The in-memory store is authoritative at runtime and writes through.
type ParameterRepository interface {
	// SaveOverride upserts the override at (path, priority)
	SaveOverride(ctx context.Context, param *Parameter) error

	// DeleteOverride removes the override at (path, priority)
	DeleteOverride(ctx context.Context, path string, priority int) error

	// ListOverrides retrieves every stored override
	ListOverrides(ctx context.Context) ([]*Parameter, error)

	// AppendHistory stores one immutable audit record
	AppendHistory(ctx context.Context, entry *ParameterHistoryEntry) error

	// ListHistory retrieves the full audit trail, oldest first
	ListHistory(ctx context.Context) ([]*ParameterHistoryEntry, error)
}
