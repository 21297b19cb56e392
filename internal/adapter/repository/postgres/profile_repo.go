package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// profileRepository implements domain.ProfileRepository
type profileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

// Create persists a new profile
func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, name, email, answers, versions, revision, version_seq, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	answers, err := json.Marshal(profile.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	versions, err := json.Marshal(profile.Versions)
	if err != nil {
		return fmt.Errorf("failed to marshal versions: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Name,
		profile.Email,
		answers,
		versions,
		profile.Revision,
		profile.VersionSeq,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("create profile", err)
	}

	return nil
}

// GetByID retrieves a profile by its ID
func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, name, email, answers, versions, revision, version_seq, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var profile domain.Profile
	var answersRaw, versionsRaw []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&answersRaw,
		&versionsRaw,
		&profile.Revision,
		&profile.VersionSeq,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("profile", id.String())
		}
		return nil, domain.NewPersistenceError("get profile by id", err)
	}

	if err := json.Unmarshal(answersRaw, &profile.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if err := json.Unmarshal(versionsRaw, &profile.Versions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal versions: %w", err)
	}

	return &profile, nil
}

// Update persists the current state of a profile
func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $2, email = $3, answers = $4, versions = $5, revision = $6, version_seq = $7, updated_at = $8
		WHERE id = $1
	`

	answers, err := json.Marshal(profile.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	versions, err := json.Marshal(profile.Versions)
	if err != nil {
		return fmt.Errorf("failed to marshal versions: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Name,
		profile.Email,
		answers,
		versions,
		profile.Revision,
		profile.VersionSeq,
		profile.UpdatedAt,
	)
	if err != nil {
		return domain.NewPersistenceError("update profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError("update profile", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("profile", profile.ID.String())
	}

	return nil
}

// Delete removes a profile
func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return domain.NewPersistenceError("delete profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return domain.NewPersistenceError("delete profile", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError("profile", id.String())
	}

	return nil
}

// AppendVersion stores an immutable full snapshot in the version ledger.
// Ledger rows are never updated or deleted.
func (r *profileRepository) AppendVersion(ctx context.Context, snapshot *domain.Profile, entry domain.VersionEntry) error {
	query := `
		INSERT INTO profile_versions (profile_id, version_id, reason, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal profile snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		snapshot.ID,
		entry.VersionID,
		entry.Reason,
		raw,
		entry.Timestamp,
	)
	if err != nil {
		return domain.NewPersistenceError("append profile version", err)
	}

	return nil
}
