// Package profilestore owns the single-instance profile cache and the
// profile service built on it. The cache guarantees one canonical
// in-memory Profile per id for the process lifetime: every holder of a
// cached profile observes every mutation made through any other holder.
package profilestore

import (
	"sync"

	"github.com/google/uuid"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// stripeCount must be a power of two.
const stripeCount = 32

// Cache is an explicit cache service with injected lifetime: construct it
// once in the composition root and hand it to everything that needs
// profiles. Locks are striped by profile id so unrelated profiles never
// contend.
type Cache struct {
	stripes [stripeCount]*stripe
}

type stripe struct {
	mu      sync.RWMutex // guards entries
	keyMu   sync.Mutex   // serializes read-modify-save sections
	entries map[uuid.UUID]*domain.Profile
}

// NewCache creates an empty profile cache
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.stripes {
		c.stripes[i] = &stripe{entries: make(map[uuid.UUID]*domain.Profile)}
	}
	return c
}

func (c *Cache) stripeFor(id uuid.UUID) *stripe {
	// uuid bytes are uniformly distributed; the low byte is stripe enough.
	return c.stripes[id[15]&(stripeCount-1)]
}

// Get returns the canonical instance for id, if cached
func (c *Cache) Get(id uuid.UUID) (*domain.Profile, bool) {
	s := c.stripeFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.entries[id]
	return p, ok
}

// Put installs profile as the canonical instance for its id
func (c *Cache) Put(profile *domain.Profile) {
	s := c.stripeFor(profile.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[profile.ID] = profile
}

// Evict drops the canonical instance for id
func (c *Cache) Evict(id uuid.UUID) {
	s := c.stripeFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of cached profiles
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.stripes {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// LockKey enters the critical section for one profile id and returns the
// unlock. The whole read-modify-save sequence on a profile must run inside
// it, otherwise two concurrent requests can interleave and silently lose
// an answer or a goal update. Ids on the same stripe share a lock.
func (c *Cache) LockKey(id uuid.UUID) func() {
	s := c.stripeFor(id)
	s.keyMu.Lock()
	return s.keyMu.Unlock
}
