package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// fingerprintInput is the canonical representation of everything that can
// change a simulation's outcome. Two requests with the same fingerprint are
// interchangeable.
type fingerprintInput struct {
	GoalID        string            `json:"goal_id"`
	Category      string            `json:"category"`
	TargetAmount  string            `json:"target_amount"`
	CurrentAmount string            `json:"current_amount"`
	Timeframe     string            `json:"timeframe"`
	MonthlySaving string            `json:"monthly_saving"`
	Answers       map[string]string `json:"answers"`
	Iterations    int               `json:"iterations"`
}

// Fingerprint derives a stable cache key from the simulation inputs.
// encoding/json sorts map keys, so the digest is deterministic.
func Fingerprint(goal *domain.Goal, profile *domain.Profile, monthlySaving decimal.Decimal, iterations int) string {
	answers := make(map[string]string, len(profile.Answers))
	for _, a := range profile.Answers {
		answers[a.QuestionID] = a.Value // latest occurrence wins
	}

	input := fingerprintInput{
		GoalID:        goal.ID.String(),
		Category:      string(goal.Category),
		TargetAmount:  goal.TargetAmount.String(),
		CurrentAmount: goal.CurrentAmount.String(),
		Timeframe:     goal.Timeframe.UTC().Format(time.RFC3339),
		MonthlySaving: monthlySaving.String(),
		Answers:       answers,
		Iterations:    iterations,
	}

	raw, _ := json.Marshal(input)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// ResultCache keeps completed simulation results keyed by input
// fingerprint. Results never expire; a changed input produces a new
// fingerprint, so stale entries are simply never hit again.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]*domain.ProbabilityResult
	hits    uint64
	misses  uint64
}

// NewResultCache creates an empty result cache
func NewResultCache() *ResultCache {
	return &ResultCache{entries: make(map[string]*domain.ProbabilityResult)}
}

// Get returns the cached result for a fingerprint, if any
func (c *ResultCache) Get(fingerprint string) (*domain.ProbabilityResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.entries[fingerprint]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++

	// Hand out a copy so callers can flag it without mutating the entry.
	clone := *result
	clone.FromCache = true
	return &clone, true
}

// Put stores a completed result under its fingerprint
func (c *ResultCache) Put(fingerprint string, result *domain.ProbabilityResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fingerprint] = result
}

// Stats returns a snapshot of the hit counters
func (c *ResultCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.entries)}
}
