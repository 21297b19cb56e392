package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
)

// EmergencyFundCalculator sizes an emergency fund as months of expense
// coverage. Six months is the default; the funding strategy can push it up
// to nine, the usual guidance band for single-income Indian households.
type EmergencyFundCalculator struct {
	base
}

const (
	minCoverageMonths = 6
	maxCoverageMonths = 9
)

func (c *EmergencyFundCalculator) coverageMonths(goal *domain.Goal) decimal.Decimal {
	months := c.params.GetOr(params.PathEmergencyMonths, decimal.NewFromInt(minCoverageMonths))
	if goal.FundingStrategy.Kind == domain.StrategyKindEmergencyFund && goal.FundingStrategy.EmergencyFund != nil {
		if m := goal.FundingStrategy.EmergencyFund.Months; m != 0 {
			months = decimal.NewFromInt(int64(m))
		}
	}
	if months.LessThan(decimal.NewFromInt(minCoverageMonths)) {
		return decimal.NewFromInt(minCoverageMonths)
	}
	if months.GreaterThan(decimal.NewFromInt(maxCoverageMonths)) {
		return decimal.NewFromInt(maxCoverageMonths)
	}
	return months
}

// AmountNeeded computes monthly expenses times months of coverage
func (c *EmergencyFundCalculator) AmountNeeded(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	return c.monthlyExpenses(profile).Mul(c.coverageMonths(goal)), nil
}

// RequiredMonthlySaving computes the monthly contribution toward the fund
func (c *EmergencyFundCalculator) RequiredMonthlySaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	target, err := c.AmountNeeded(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return c.requiredMonthly(goal, profile, target)
}

// RequiredAnnualSaving is twelve times the monthly requirement
func (c *EmergencyFundCalculator) RequiredAnnualSaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(twelve), nil
}

// SuccessProbability estimates coarse feasibility
func (c *EmergencyFundCalculator) SuccessProbability(goal *domain.Goal, profile *domain.Profile) (float64, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return 0, err
	}
	return c.successHeuristic(goal, profile, monthly), nil
}

// RecommendedAllocation keeps an emergency fund liquid regardless of the
// profile's risk appetite.
func (c *EmergencyFundCalculator) RecommendedAllocation(_ *domain.Goal, _ *domain.Profile) (map[string]decimal.Decimal, error) {
	return c.params.AllocationModel(params.RiskConservative)
}
