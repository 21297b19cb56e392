// Package params implements the layered parameter store for financial
// assumptions. Every assumption is addressed by a dot path
// (e.g. "asset_returns.equity") and resolved through priority-ranked
// overrides: the highest-priority, most recent override wins, and a
// built-in documented default backs every known path so calculator call
// sites always see a numeric value.
package params

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// Store resolves financial assumptions through layered overrides and keeps
// the append-only audit history. Reads are concurrent; writes to the same
// store are serialized so history stays strictly timestamp-ordered.
type Store struct {
	mu        sync.RWMutex
	overrides map[string][]*domain.Parameter // sorted: priority desc, recency desc
	history   map[string][]*domain.ParameterHistoryEntry
	defaults  map[string]decimal.Decimal
	slabs     map[TaxRegime][]TaxSlab

	repo   domain.ParameterRepository // nil = ephemeral store
	engine domain.SimulationEngine    // nil until a simulation engine is attached
	logger *zap.Logger
}

// NewStore creates a parameter store backed by the built-in defaults.
// repo may be nil for an ephemeral store (tests, tooling); engine may be
// nil when no simulation collaborator is attached.
func NewStore(repo domain.ParameterRepository, engine domain.SimulationEngine, logger *zap.Logger) *Store {
	return &Store{
		overrides: make(map[string][]*domain.Parameter),
		history:   make(map[string][]*domain.ParameterHistoryEntry),
		defaults:  builtinDefaults(),
		slabs:     builtinSlabs(),
		repo:      repo,
		engine:    engine,
		logger:    logger,
	}
}

// Load hydrates overrides and audit history from storage
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	stored, err := s.repo.ListOverrides(ctx)
	if err != nil {
		return domain.NewPersistenceError("load parameter overrides", err)
	}
	entries, err := s.repo.ListHistory(ctx)
	if err != nil {
		return domain.NewPersistenceError("load parameter history", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range stored {
		s.installLocked(p)
	}
	for _, e := range entries {
		s.history[e.Path] = append(s.history[e.Path], e)
	}
	return nil
}

// Get resolves the effective value for a path: the highest-priority
// override, falling back to the built-in default. Unknown path with no
// default returns NotFoundError.
func (s *Store) Get(path string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(path)
}

func (s *Store) getLocked(path string) (decimal.Decimal, error) {
	if tiers := s.overrides[path]; len(tiers) > 0 {
		return tiers[0].Value, nil
	}
	if def, ok := s.defaults[path]; ok {
		return def, nil
	}
	return decimal.Zero, domain.NewNotFoundError("parameter", path)
}

// GetOr resolves a path, substituting fallback (with a logged warning) when
// the path is unknown. Calculators use this so a missing assumption
// degrades instead of blocking a goal calculation.
func (s *Store) GetOr(path string, fallback decimal.Decimal) decimal.Decimal {
	v, err := s.Get(path)
	if err != nil {
		s.logger.Warn("parameter missing, using fallback",
			zap.String("path", path),
			zap.String("fallback", fallback.String()))
		return fallback
	}
	return v
}

// Set installs or replaces the override at (path, priority) and appends an
// audit entry. A lower-priority prior write is never dropped: it stays in
// place and becomes effective again if this override is later removed.
func (s *Store) Set(ctx context.Context, path string, value decimal.Decimal, priority int, reason, source string) error {
	if path == "" {
		return domain.NewValidationError("path", "parameter path cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var oldValue *decimal.Decimal
	for _, p := range s.overrides[path] {
		if p.SourcePriority == priority {
			v := p.Value
			oldValue = &v
			break
		}
	}
	if oldValue == nil {
		if def, ok := s.defaults[path]; ok {
			v := def
			oldValue = &v
		}
	}

	param := &domain.Parameter{
		Path:           path,
		Value:          value,
		SourcePriority: priority,
		Reason:         reason,
		Timestamp:      time.Now().UTC(),
	}
	entry := &domain.ParameterHistoryEntry{
		Path:           path,
		OldValue:       oldValue,
		NewValue:       value,
		SourcePriority: priority,
		Reason:         reason,
		Source:         source,
		Timestamp:      param.Timestamp,
	}

	if s.repo != nil {
		if err := s.repo.SaveOverride(ctx, param); err != nil {
			return domain.NewPersistenceError("save parameter override", err)
		}
	}

	// The override row is durable at this point, so the value installs
	// before a history failure surfaces: memory and the overrides table
	// never diverge.
	s.installLocked(param)
	s.history[path] = append(s.history[path], entry)

	if s.repo != nil {
		if err := s.repo.AppendHistory(ctx, entry); err != nil {
			return domain.NewPersistenceError("append parameter history", err)
		}
	}
	return nil
}

// installLocked replaces the override at the parameter's priority tier and
// keeps the tier list sorted by priority desc, recency desc.
func (s *Store) installLocked(param *domain.Parameter) {
	tiers := s.overrides[param.Path]
	replaced := false
	for i, p := range tiers {
		if p.SourcePriority == param.SourcePriority {
			tiers[i] = param
			replaced = true
			break
		}
	}
	if !replaced {
		tiers = append(tiers, param)
	}
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].SourcePriority != tiers[j].SourcePriority {
			return tiers[i].SourcePriority > tiers[j].SourcePriority
		}
		return tiers[i].Timestamp.After(tiers[j].Timestamp)
	})
	s.overrides[param.Path] = tiers
}

// Remove deletes the override at (path, priority). The next lower tier, or
// the built-in default, becomes effective again.
func (s *Store) Remove(ctx context.Context, path string, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiers := s.overrides[path]
	idx := -1
	for i, p := range tiers {
		if p.SourcePriority == priority {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.NewNotFoundError("parameter", path)
	}

	if s.repo != nil {
		if err := s.repo.DeleteOverride(ctx, path, priority); err != nil {
			return domain.NewPersistenceError("delete parameter override", err)
		}
	}

	removed := tiers[idx]
	s.overrides[path] = append(tiers[:idx], tiers[idx+1:]...)

	entry := &domain.ParameterHistoryEntry{
		Path:           path,
		OldValue:       &removed.Value,
		NewValue:       decimal.Zero,
		SourcePriority: priority,
		Reason:         "override removed",
		Source:         "store",
		Timestamp:      time.Now().UTC(),
	}
	s.history[path] = append(s.history[path], entry)
	if s.repo != nil {
		if err := s.repo.AppendHistory(ctx, entry); err != nil {
			return domain.NewPersistenceError("append parameter history", err)
		}
	}
	return nil
}

// History returns the audit trail for a path, oldest first
func (s *Store) History(path string) []*domain.ParameterHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.history[path]
	out := make([]*domain.ParameterHistoryEntry, len(entries))
	copy(out, entries)
	return out
}
