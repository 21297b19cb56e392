package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category identifies which calculator handles a goal.
type Category string

const (
	CategoryEmergencyFund         Category = "emergency_fund"
	CategoryTraditionalRetirement Category = "traditional_retirement"
	CategoryEarlyRetirement       Category = "early_retirement"
	CategoryHomePurchase          Category = "home_purchase"
	CategoryEducation             Category = "education"
	CategoryDebtRepayment         Category = "debt_repayment"
	CategoryTravel                Category = "travel"
	CategoryCharitableGiving      Category = "charitable_giving"
	CategoryCustom                Category = "custom"
)

// Importance weights a goal for priority ranking.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Flexibility captures how movable the goal's deadline is.
type Flexibility string

const (
	FlexibilityFixed            Flexibility = "fixed"
	FlexibilitySomewhatFlexible Flexibility = "somewhat_flexible"
	FlexibilityVeryFlexible     Flexibility = "very_flexible"
)

// Goal represents a financial goal owned by a profile.
// CurrentProgress and PriorityScore are derived; they are recomputed on
// every create and update, never read stale from storage.
// SuccessProbability is written by the external probability analyzer; the
// calculator seeds it with a coarse heuristic.
type Goal struct {
	ID                 uuid.UUID
	ProfileID          uuid.UUID
	Category           Category
	Title              string
	TargetAmount       decimal.Decimal
	CurrentAmount      decimal.Decimal
	Timeframe          time.Time
	Importance         Importance
	Flexibility        Flexibility
	Notes              string
	CurrentProgress    float64 // percent, [0,100]
	PriorityScore      float64 // >= 0, 2 decimals
	SuccessProbability float64 // percent, [0,100]
	FundingStrategy    FundingStrategy
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewGoal creates a goal with the minimal required fields and derives
// progress and priority immediately.
func NewGoal(profileID uuid.UUID, category Category, title string, timeframe time.Time) *Goal {
	now := time.Now().UTC()
	g := &Goal{
		ID:          uuid.New(),
		ProfileID:   profileID,
		Category:    category,
		Title:       title,
		Timeframe:   timeframe,
		Importance:  ImportanceMedium,
		Flexibility: FlexibilitySomewhatFlexible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	g.Recalculate()
	return g
}

// Validate ensures the goal adheres to domain rules
func (g *Goal) Validate() error {
	if g.ProfileID == uuid.Nil {
		return NewValidationError("profile_id", "goal must belong to a profile")
	}
	if g.Title == "" {
		return NewValidationError("title", "goal title cannot be empty")
	}
	if g.Category == "" {
		return NewValidationError("category", "goal category cannot be empty")
	}
	if g.Timeframe.IsZero() {
		return NewValidationError("timeframe", "goal timeframe cannot be empty")
	}
	switch g.Importance {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
	default:
		return NewValidationError("importance", "must be high, medium or low")
	}
	switch g.Flexibility {
	case FlexibilityFixed, FlexibilitySomewhatFlexible, FlexibilityVeryFlexible:
	default:
		return NewValidationError("flexibility", "must be fixed, somewhat_flexible or very_flexible")
	}
	if g.CurrentAmount.IsNegative() {
		return NewValidationError("current_amount", "cannot be negative")
	}
	return g.FundingStrategy.Validate()
}

// Recalculate refreshes the derived fields. Call after any mutation.
func (g *Goal) Recalculate() {
	g.CurrentProgress = g.calculateProgress()
	g.PriorityScore = g.calculatePriorityScore(time.Now().UTC())
}

// calculateProgress returns percent funded, clamped to [0,100].
// A goal with no positive target has zero progress by definition.
func (g *Goal) calculateProgress() float64 {
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// calculatePriorityScore derives the display ranking score:
// importance points + urgency points + flexibility points + progress bonus,
// rounded to 2 decimals. Raising importance or reducing flexibility never
// lowers the score with everything else fixed.
func (g *Goal) calculatePriorityScore(now time.Time) float64 {
	score := g.importancePoints() + g.urgencyPoints(now) + g.flexibilityPoints() + g.progressBonus()
	return math.Round(score*100) / 100
}

func (g *Goal) importancePoints() float64 {
	switch g.Importance {
	case ImportanceHigh:
		return 50
	case ImportanceLow:
		return 10
	default:
		return 30
	}
}

// urgencyPoints maps days remaining to a 0-30 urgency band:
// overdue caps at 30, then 30->25 inside a month, 25->15 inside a year,
// 15->5 inside five years, hyperbolic decay toward 0 beyond that.
func (g *Goal) urgencyPoints(now time.Time) float64 {
	days := float64(g.DaysRemaining(now))
	switch {
	case days <= 0:
		return 30
	case days <= 30:
		return 25 + (30-days)/30*5
	case days <= 365:
		return 15 + (365-days)/335*10
	case days <= 1825:
		return 5 + (1825-days)/1460*10
	default:
		return 5 * 1825 / days
	}
}

func (g *Goal) flexibilityPoints() float64 {
	switch g.Flexibility {
	case FlexibilityFixed:
		return 20
	case FlexibilityVeryFlexible:
		return 5
	default:
		return 10
	}
}

// progressBonus rewards half-funded goals: triangular over progress,
// peaking at 5 points at 50% and falling to 0 at both 0% and 100%.
func (g *Goal) progressBonus() float64 {
	return (50 - math.Abs(g.CurrentProgress-50)) / 10
}

// DaysRemaining returns whole days until the timeframe; negative if overdue
func (g *Goal) DaysRemaining(now time.Time) int {
	return int(g.Timeframe.Sub(now).Hours() / 24)
}
