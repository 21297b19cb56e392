package calculator

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
)

// EducationCalculator compounds today's cost of the course at the
// education inflation rate over the years to the goal. Education inflation
// runs well above general inflation, so both the amount needed and the
// required saving strictly increase with the rate.
type EducationCalculator struct {
	base
}

func (c *EducationCalculator) currentCost(goal *domain.Goal) decimal.Decimal {
	if goal.FundingStrategy.Kind == domain.StrategyKindEducation && goal.FundingStrategy.Education != nil {
		if cost := goal.FundingStrategy.Education.CurrentCost; cost.IsPositive() {
			return cost
		}
	}
	// Fall back to the explicit target as today's cost.
	if goal.TargetAmount.IsPositive() {
		return goal.TargetAmount
	}
	c.logger.Warn("education goal has no cost to project",
		zap.String("goal_id", goal.ID.String()))
	return decimal.Zero
}

// AmountNeeded compounds the current cost at education inflation
func (c *EducationCalculator) AmountNeeded(goal *domain.Goal, _ *domain.Profile) (decimal.Decimal, error) {
	inflation := c.params.GetOr(params.PathInflationEducation, decimal.RequireFromString("0.08"))
	return compound(c.currentCost(goal), inflation, yearsToGoal(goal)), nil
}

// RequiredMonthlySaving computes the monthly contribution toward the cost
func (c *EducationCalculator) RequiredMonthlySaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	target, err := c.AmountNeeded(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return c.requiredMonthly(goal, profile, target)
}

// RequiredAnnualSaving is twelve times the monthly requirement
func (c *EducationCalculator) RequiredAnnualSaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(twelve), nil
}

// SuccessProbability estimates coarse feasibility
func (c *EducationCalculator) SuccessProbability(goal *domain.Goal, profile *domain.Profile) (float64, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return 0, err
	}
	return c.successHeuristic(goal, profile, monthly), nil
}

// RecommendedAllocation follows the horizon and the profile's risk appetite
func (c *EducationCalculator) RecommendedAllocation(goal *domain.Goal, profile *domain.Profile) (map[string]decimal.Decimal, error) {
	return c.allocationForHorizon(goal, profile)
}
