package profilestore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// Service is the profile store: repository-backed persistence plus the
// canonical-instance cache contract.
type Service struct {
	cache    *Cache
	profiles domain.ProfileRepository
	goals    domain.GoalRepository
	logger   *zap.Logger
}

// NewService creates a profile service over the given cache and repos
func NewService(cache *Cache, profiles domain.ProfileRepository, goals domain.GoalRepository, logger *zap.Logger) *Service {
	return &Service{
		cache:    cache,
		profiles: profiles,
		goals:    goals,
		logger:   logger,
	}
}

// CreateProfile allocates a profile at version 1, persists it and installs
// it as the canonical instance.
func (s *Service) CreateProfile(ctx context.Context, name, email string) (*domain.Profile, error) {
	profile := domain.NewProfile(name, email)
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if err := s.profiles.Create(ctx, profile.Clone()); err != nil {
		return nil, err
	}

	s.cache.Put(profile)
	return profile, nil
}

// GetProfile returns the canonical instance for id. A cache hit returns
// the existing instance, not a copy; a miss loads from storage and
// installs the loaded instance as canonical.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if profile, ok := s.cache.Get(id); ok {
		return profile, nil
	}

	unlock := s.cache.LockKey(id)
	defer unlock()

	// Another request may have loaded it while we waited on the key lock.
	if profile, ok := s.cache.Get(id); ok {
		return profile, nil
	}

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(profile)
	return profile, nil
}

// SaveProfile persists a deep copy of the profile and bumps its revision.
// If the passed instance's revision does not match the cached canonical's,
// a caller has been mutating a stale or private instance; the passed
// instance becomes the new canonical and the divergence is logged.
func (s *Service) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	unlock := s.cache.LockKey(profile.ID)
	defer unlock()
	return s.saveLocked(ctx, profile)
}

func (s *Service) saveLocked(ctx context.Context, profile *domain.Profile) error {
	if cached, ok := s.cache.Get(profile.ID); ok && cached.Revision != profile.Revision {
		s.logger.Warn("divergent profile instance on save; passed instance becomes canonical",
			zap.String("profile_id", profile.ID.String()),
			zap.Int64("cached_revision", cached.Revision),
			zap.Int64("saved_revision", profile.Revision))
	}

	profile.Revision++
	profile.UpdatedAt = time.Now().UTC()

	// Persist a deep copy: mutating the live object after this call must
	// not retroactively change the snapshot being written.
	if err := s.profiles.Update(ctx, profile.Clone()); err != nil {
		return err
	}

	s.cache.Put(profile)
	return nil
}

// WithProfile runs fn on the canonical instance inside the per-profile
// critical section and saves the result. This is the safe form of
// read-modify-save under concurrent requests.
func (s *Service) WithProfile(ctx context.Context, id uuid.UUID, fn func(*domain.Profile) error) (*domain.Profile, error) {
	unlock := s.cache.LockKey(id)
	defer unlock()

	profile, ok := s.cache.Get(id)
	if !ok {
		var err error
		profile, err = s.profiles.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.Put(profile)
	}

	if err := fn(profile); err != nil {
		return nil, err
	}
	if err := s.saveLocked(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddAnswer appends a questionnaire answer atomically
func (s *Service) AddAnswer(ctx context.Context, id uuid.UUID, questionID, value string) (*domain.Profile, error) {
	return s.WithProfile(ctx, id, func(p *domain.Profile) error {
		p.AddAnswer(questionID, value)
		return nil
	})
}

// CreateVersion appends an immutable full snapshot to the version ledger.
// Version numbers strictly increase and are never reused: a failed append
// burns its number.
func (s *Service) CreateVersion(ctx context.Context, profile *domain.Profile, reason string) (domain.VersionEntry, error) {
	unlock := s.cache.LockKey(profile.ID)
	defer unlock()

	profile.VersionSeq++
	entry := domain.VersionEntry{
		VersionID: profile.VersionSeq,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	}

	if err := s.profiles.AppendVersion(ctx, profile.Clone(), entry); err != nil {
		return domain.VersionEntry{}, err
	}

	profile.Versions = append(profile.Versions, entry)
	return entry, nil
}

// DeleteProfile removes the profile, cascades deletion of its goals and
// evicts the canonical instance.
func (s *Service) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	unlock := s.cache.LockKey(id)
	defer unlock()

	if err := s.goals.DeleteByProfile(ctx, id); err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(id)
	return nil
}
