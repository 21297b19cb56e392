package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Override priority tiers, from built-in defaults up to per-session
// experiments. Higher wins. Tiers are plain ints so admin tooling can
// insert intermediate levels without a schema change.
const (
	PriorityDefault   = 0
	PriorityBootstrap = 10 // assumptions file loaded at startup
	PriorityAdmin     = 20
	PrioritySession   = 30
)

// Parameter is one override of a named financial assumption at a priority
// tier. The effective value for a path is the highest-priority override,
// ties broken by recency.
type Parameter struct {
	Path           string
	Value          decimal.Decimal
	SourcePriority int
	Reason         string
	Timestamp      time.Time
}

// ParameterHistoryEntry is an immutable audit record of one parameter
// write. Entries are append-only: never mutated, never deleted.
type ParameterHistoryEntry struct {
	Path           string
	OldValue       *decimal.Decimal // nil when no prior override at this tier
	NewValue       decimal.Decimal
	SourcePriority int
	Reason         string
	Source         string
	Timestamp      time.Time
}
