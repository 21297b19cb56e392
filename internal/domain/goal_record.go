package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalRecord is the serialized form of a Goal used at the storage boundary
// and by export tooling. Enhanced fields (derived scores, probability,
// funding strategy) are pointers so legacy mode can omit them entirely:
// older consumers reject payloads with unknown keys.
type GoalRecord struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profile_id"`
	Category      string    `json:"category"`
	Title         string    `json:"title"`
	TargetAmount  string    `json:"target_amount"`
	CurrentAmount string    `json:"current_amount"`
	Timeframe     time.Time `json:"timeframe"`
	Importance    string    `json:"importance"`
	Flexibility   string    `json:"flexibility"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	CurrentProgress    *float64         `json:"current_progress,omitempty"`
	PriorityScore      *float64         `json:"priority_score,omitempty"`
	SuccessProbability *float64         `json:"goal_success_probability,omitempty"`
	FundingStrategy    *FundingStrategy `json:"funding_strategy,omitempty"`
}

// ToRecord serializes the goal. With legacy=true the enhanced-only fields
// are left out of the record.
func (g *Goal) ToRecord(legacy bool) GoalRecord {
	rec := GoalRecord{
		ID:            g.ID.String(),
		ProfileID:     g.ProfileID.String(),
		Category:      string(g.Category),
		Title:         g.Title,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		Timeframe:     g.Timeframe,
		Importance:    string(g.Importance),
		Flexibility:   string(g.Flexibility),
		Notes:         g.Notes,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	if legacy {
		return rec
	}
	progress := g.CurrentProgress
	priority := g.PriorityScore
	probability := g.SuccessProbability
	rec.CurrentProgress = &progress
	rec.PriorityScore = &priority
	rec.SuccessProbability = &probability
	if !g.FundingStrategy.IsZero() {
		fs := g.FundingStrategy
		rec.FundingStrategy = &fs
	}
	return rec
}

// GoalFromRecord rebuilds a Goal from its serialized form.
// Derived fields absent from the record (legacy payloads) are recomputed.
func GoalFromRecord(rec GoalRecord) (*Goal, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, NewValidationError("id", "malformed goal id")
	}
	profileID, err := uuid.Parse(rec.ProfileID)
	if err != nil {
		return nil, NewValidationError("profile_id", "malformed profile id")
	}
	target, err := decimal.NewFromString(rec.TargetAmount)
	if err != nil {
		return nil, NewValidationError("target_amount", "malformed amount")
	}
	current, err := decimal.NewFromString(rec.CurrentAmount)
	if err != nil {
		return nil, NewValidationError("current_amount", "malformed amount")
	}

	g := &Goal{
		ID:            id,
		ProfileID:     profileID,
		Category:      Category(rec.Category),
		Title:         rec.Title,
		TargetAmount:  target,
		CurrentAmount: current,
		Timeframe:     rec.Timeframe,
		Importance:    Importance(rec.Importance),
		Flexibility:   Flexibility(rec.Flexibility),
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	if rec.FundingStrategy != nil {
		g.FundingStrategy = *rec.FundingStrategy
	}
	if rec.SuccessProbability != nil {
		g.SuccessProbability = *rec.SuccessProbability
	}
	if rec.CurrentProgress != nil && rec.PriorityScore != nil {
		g.CurrentProgress = *rec.CurrentProgress
		g.PriorityScore = *rec.PriorityScore
	} else {
		g.Recalculate()
	}
	return g, nil
}
