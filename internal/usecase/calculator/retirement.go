package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
)

// RetirementCalculator sizes a retirement corpus: today's expenses inflated
// to the retirement date, times the safe-withdrawal corpus multiplier.
// Higher inflation strictly raises the amount needed; a higher equity
// return (through the blended rate) strictly lowers the required monthly
// contribution.
type RetirementCalculator struct {
	base
}

const defaultCurrentAge = 30

// earlyRetirementLead is how many years before the standard retirement age
// an early-retirement goal targets when the profile gives no explicit age.
const earlyRetirementLead = 10

func (c *RetirementCalculator) currentAge(profile *domain.Profile) int64 {
	if age, ok := profile.IntAnswer(domain.QuestionCurrentAge); ok && age > 0 {
		return int64(age)
	}
	return defaultCurrentAge
}

func (c *RetirementCalculator) retirementAge(goal *domain.Goal, profile *domain.Profile) int64 {
	if goal.FundingStrategy.Kind == domain.StrategyKindRetirement && goal.FundingStrategy.Retirement != nil {
		if a := goal.FundingStrategy.Retirement.RetirementAge; a > 0 {
			return int64(a)
		}
	}
	if age, ok := profile.IntAnswer(domain.QuestionRetirementAge); ok && age > 0 {
		return int64(age)
	}
	standard := c.params.GetOr(params.PathRetirementAge, decimal.NewFromInt(60)).IntPart()
	if goal.Category == domain.CategoryEarlyRetirement {
		return standard - earlyRetirementLead
	}
	return standard
}

func (c *RetirementCalculator) yearsToRetirement(goal *domain.Goal, profile *domain.Profile) int64 {
	years := c.retirementAge(goal, profile) - c.currentAge(profile)
	if years < 0 {
		return 0
	}
	return years
}

func (c *RetirementCalculator) monthlyExpense(goal *domain.Goal, profile *domain.Profile) decimal.Decimal {
	if goal.FundingStrategy.Kind == domain.StrategyKindRetirement && goal.FundingStrategy.Retirement != nil {
		if e := goal.FundingStrategy.Retirement.MonthlyExpense; e.IsPositive() {
			return e
		}
	}
	return c.monthlyExpenses(profile)
}

// AmountNeeded computes the inflation-adjusted retirement corpus
func (c *RetirementCalculator) AmountNeeded(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	inflation := c.params.GetOr(params.PathInflationGeneral, decimal.RequireFromString("0.06"))
	multiplier := c.params.GetOr(params.PathCorpusMultiplier, decimal.NewFromInt(25))

	annualToday := c.monthlyExpense(goal, profile).Mul(twelve)
	annualAtRetirement := compound(annualToday, inflation, c.yearsToRetirement(goal, profile))
	return annualAtRetirement.Mul(multiplier), nil
}

// RequiredMonthlySaving computes the contribution over the working years
func (c *RetirementCalculator) RequiredMonthlySaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	target, err := c.AmountNeeded(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	months := c.yearsToRetirement(goal, profile) * 12
	return c.requiredMonthlyOver(profile, goal.CurrentAmount, target, months)
}

// RequiredAnnualSaving is twelve times the monthly requirement
func (c *RetirementCalculator) RequiredAnnualSaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(twelve), nil
}

// SuccessProbability estimates coarse feasibility
func (c *RetirementCalculator) SuccessProbability(goal *domain.Goal, profile *domain.Profile) (float64, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return 0, err
	}
	return c.successHeuristic(goal, profile, monthly), nil
}

// RecommendedAllocation follows the horizon and the profile's risk appetite
func (c *RetirementCalculator) RecommendedAllocation(goal *domain.Goal, profile *domain.Profile) (map[string]decimal.Decimal, error) {
	return c.allocationForHorizon(goal, profile)
}
