package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// GenericCalculator is the always-succeeding fallback for categories
// without a dedicated algorithm (debt repayment, travel, custom). The
// explicit target is taken at face value.
type GenericCalculator struct {
	base
}

// AmountNeeded returns the goal's explicit target amount
func (c *GenericCalculator) AmountNeeded(goal *domain.Goal, _ *domain.Profile) (decimal.Decimal, error) {
	if goal.TargetAmount.IsPositive() {
		return goal.TargetAmount, nil
	}
	return decimal.Zero, nil
}

// RequiredMonthlySaving computes the monthly contribution toward the target
func (c *GenericCalculator) RequiredMonthlySaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	target, err := c.AmountNeeded(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return c.requiredMonthly(goal, profile, target)
}

// RequiredAnnualSaving is twelve times the monthly requirement
func (c *GenericCalculator) RequiredAnnualSaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(twelve), nil
}

// SuccessProbability estimates coarse feasibility
func (c *GenericCalculator) SuccessProbability(goal *domain.Goal, profile *domain.Profile) (float64, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return 0, err
	}
	return c.successHeuristic(goal, profile, monthly), nil
}

// RecommendedAllocation follows the horizon and the profile's risk appetite
func (c *GenericCalculator) RecommendedAllocation(goal *domain.Goal, profile *domain.Profile) (map[string]decimal.Decimal, error) {
	return c.allocationForHorizon(goal, profile)
}
