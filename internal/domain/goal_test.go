package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoal(importance Importance, flexibility Flexibility) *Goal {
	g := NewGoal(uuid.New(), CategoryTravel, "Trip to Ladakh", time.Now().UTC().AddDate(2, 0, 0))
	g.Importance = importance
	g.Flexibility = flexibility
	g.TargetAmount = decimal.NewFromInt(200000)
	g.CurrentAmount = decimal.NewFromInt(50000)
	g.Recalculate()
	return g
}

func TestPriorityScore_ImportanceOrdering(t *testing.T) {
	// Three goals identical except importance must rank high > medium > low
	high := testGoal(ImportanceHigh, FlexibilityFixed)
	medium := testGoal(ImportanceMedium, FlexibilityFixed)
	low := testGoal(ImportanceLow, FlexibilityFixed)

	assert.Greater(t, high.PriorityScore, medium.PriorityScore)
	assert.Greater(t, medium.PriorityScore, low.PriorityScore)
}

func TestPriorityScore_FlexibilityMonotonic(t *testing.T) {
	fixed := testGoal(ImportanceMedium, FlexibilityFixed)
	somewhat := testGoal(ImportanceMedium, FlexibilitySomewhatFlexible)
	very := testGoal(ImportanceMedium, FlexibilityVeryFlexible)

	assert.Greater(t, fixed.PriorityScore, somewhat.PriorityScore)
	assert.Greater(t, somewhat.PriorityScore, very.PriorityScore)
}

func TestPriorityScore_UrgencyBands(t *testing.T) {
	now := time.Now().UTC()
	g := testGoal(ImportanceMedium, FlexibilitySomewhatFlexible)

	g.Timeframe = now.AddDate(0, 0, -10) // overdue
	assert.InDelta(t, 30, g.urgencyPoints(now), 0.001)

	g.Timeframe = now.Add(10 * 24 * time.Hour)
	urgent := g.urgencyPoints(now)
	assert.GreaterOrEqual(t, urgent, 25.0)
	assert.LessOrEqual(t, urgent, 30.0)

	g.Timeframe = now.Add(180 * 24 * time.Hour)
	withinYear := g.urgencyPoints(now)
	assert.GreaterOrEqual(t, withinYear, 15.0)
	assert.Less(t, withinYear, urgent)

	g.Timeframe = now.AddDate(3, 0, 0)
	withinFive := g.urgencyPoints(now)
	assert.GreaterOrEqual(t, withinFive, 5.0)
	assert.Less(t, withinFive, withinYear)

	g.Timeframe = now.AddDate(20, 0, 0)
	distant := g.urgencyPoints(now)
	assert.Greater(t, distant, 0.0)
	assert.Less(t, distant, 5.0)
}

func TestDaysRemaining(t *testing.T) {
	now := time.Now().UTC()
	g := testGoal(ImportanceMedium, FlexibilityFixed)

	g.Timeframe = now.Add(45 * 24 * time.Hour)
	assert.Equal(t, 45, g.DaysRemaining(now))

	g.Timeframe = now.Add(-10 * 24 * time.Hour)
	assert.Equal(t, -10, g.DaysRemaining(now))
	assert.InDelta(t, 30, g.urgencyPoints(now), 0.001, "overdue goals carry full urgency")
}

func TestPriorityScore_RoundedToTwoDecimals(t *testing.T) {
	g := testGoal(ImportanceHigh, FlexibilityFixed)
	cents := g.PriorityScore * 100
	assert.InDelta(t, cents, float64(int64(cents+0.5)), 0.0001)
}

func TestProgress_Bounds(t *testing.T) {
	g := testGoal(ImportanceMedium, FlexibilityFixed)

	g.CurrentAmount = decimal.NewFromInt(500000) // overfunded
	g.Recalculate()
	assert.Equal(t, 100.0, g.CurrentProgress)

	g.CurrentAmount = decimal.Zero
	g.Recalculate()
	assert.Equal(t, 0.0, g.CurrentProgress)

	g.CurrentAmount = decimal.NewFromInt(100000)
	g.Recalculate()
	assert.InDelta(t, 50.0, g.CurrentProgress, 0.001)
}

func TestProgress_ZeroWhenNoTarget(t *testing.T) {
	g := testGoal(ImportanceMedium, FlexibilityFixed)
	g.TargetAmount = decimal.Zero
	g.CurrentAmount = decimal.NewFromInt(100000)
	g.Recalculate()
	assert.Equal(t, 0.0, g.CurrentProgress)

	g.TargetAmount = decimal.NewFromInt(-5000)
	g.Recalculate()
	assert.Equal(t, 0.0, g.CurrentProgress)
}

func TestProgressBonus_TriangularPeak(t *testing.T) {
	g := testGoal(ImportanceMedium, FlexibilityFixed)

	g.CurrentProgress = 0
	assert.InDelta(t, 0, g.progressBonus(), 0.001)
	g.CurrentProgress = 50
	assert.InDelta(t, 5, g.progressBonus(), 0.001)
	g.CurrentProgress = 100
	assert.InDelta(t, 0, g.progressBonus(), 0.001)
	g.CurrentProgress = 25
	assert.InDelta(t, 2.5, g.progressBonus(), 0.001)
}

func TestGoalValidate(t *testing.T) {
	g := testGoal(ImportanceHigh, FlexibilityFixed)
	require.NoError(t, g.Validate())

	g.Title = ""
	err := g.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	g = testGoal(ImportanceHigh, FlexibilityFixed)
	g.Importance = "critical"
	assert.Error(t, g.Validate())

	g = testGoal(ImportanceHigh, FlexibilityFixed)
	g.CurrentAmount = decimal.NewFromInt(-1)
	assert.Error(t, g.Validate())
}

func TestGoalRecord_RoundTrip(t *testing.T) {
	g := testGoal(ImportanceHigh, FlexibilitySomewhatFlexible)
	g.SuccessProbability = 72.5
	g.FundingStrategy = FundingStrategy{
		Kind:         StrategyKindContribution,
		Contribution: &ContributionPlan{MonthlyAmount: decimal.NewFromInt(5000)},
	}

	rec := g.ToRecord(false)
	back, err := GoalFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, g.ID, back.ID)
	assert.Equal(t, g.ProfileID, back.ProfileID)
	assert.Equal(t, g.Category, back.Category)
	assert.Equal(t, g.Title, back.Title)
	assert.True(t, g.TargetAmount.Equal(back.TargetAmount))
	assert.True(t, g.CurrentAmount.Equal(back.CurrentAmount))
	assert.Equal(t, g.Importance, back.Importance)
	assert.Equal(t, g.Flexibility, back.Flexibility)
	assert.Equal(t, g.SuccessProbability, back.SuccessProbability)
	assert.Equal(t, g.PriorityScore, back.PriorityScore)
	assert.Equal(t, StrategyKindContribution, back.FundingStrategy.Kind)
}

func TestGoalRecord_LegacyModeOmitsEnhancedFields(t *testing.T) {
	g := testGoal(ImportanceHigh, FlexibilityFixed)
	g.SuccessProbability = 55

	raw, err := json.Marshal(g.ToRecord(true))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "current_progress")
	assert.NotContains(t, fields, "priority_score")
	assert.NotContains(t, fields, "goal_success_probability")
	assert.NotContains(t, fields, "funding_strategy")
	assert.Contains(t, fields, "target_amount")
}

func TestGoalFromRecord_LegacyRecomputesDerived(t *testing.T) {
	g := testGoal(ImportanceHigh, FlexibilityFixed)
	back, err := GoalFromRecord(g.ToRecord(true))
	require.NoError(t, err)

	// Derived fields were absent from the legacy record, so they must have
	// been recomputed rather than left zero.
	assert.InDelta(t, g.CurrentProgress, back.CurrentProgress, 0.001)
	assert.Greater(t, back.PriorityScore, 0.0)
}
