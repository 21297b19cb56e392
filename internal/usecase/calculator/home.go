package calculator

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
)

// HomeDownPaymentCalculator sizes the down payment from the funding
// strategy's property value and percent, with an income-based heuristic
// only when the strategy is absent.
type HomeDownPaymentCalculator struct {
	base
}

// AmountNeeded computes property value times down-payment percent
func (c *HomeDownPaymentCalculator) AmountNeeded(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	if goal.FundingStrategy.Kind == domain.StrategyKindHomePurchase && goal.FundingStrategy.HomePurchase != nil {
		hp := goal.FundingStrategy.HomePurchase
		percent := hp.DownPaymentPercent
		if percent.LessThanOrEqual(decimal.Zero) {
			percent = c.params.GetOr(params.PathDownPaymentPercent, decimal.RequireFromString("0.20"))
		}
		if hp.PropertyValue.IsPositive() {
			return hp.PropertyValue.Mul(percent), nil
		}
	}

	// No strategy: assume an affordable property at the configured
	// price-to-income multiple.
	income, ok := profile.DecimalAnswer(domain.QuestionMonthlyIncome)
	if !ok {
		c.logger.Warn("home goal has no funding strategy and no income answer",
			zap.String("goal_id", goal.ID.String()))
		return decimal.Zero, nil
	}
	multiple := c.params.GetOr(params.PathPriceIncomeMultiple, decimal.NewFromInt(4))
	percent := c.params.GetOr(params.PathDownPaymentPercent, decimal.RequireFromString("0.20"))
	propertyValue := income.Mul(twelve).Mul(multiple)
	return propertyValue.Mul(percent), nil
}

// RequiredMonthlySaving computes the monthly contribution toward the down
// payment
func (c *HomeDownPaymentCalculator) RequiredMonthlySaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	target, err := c.AmountNeeded(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return c.requiredMonthly(goal, profile, target)
}

// RequiredAnnualSaving is twelve times the monthly requirement
func (c *HomeDownPaymentCalculator) RequiredAnnualSaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return decimal.Zero, err
	}
	return monthly.Mul(twelve), nil
}

// SuccessProbability estimates coarse feasibility
func (c *HomeDownPaymentCalculator) SuccessProbability(goal *domain.Goal, profile *domain.Profile) (float64, error) {
	monthly, err := c.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return 0, err
	}
	return c.successHeuristic(goal, profile, monthly), nil
}

// RecommendedAllocation follows the horizon and the profile's risk appetite
func (c *HomeDownPaymentCalculator) RecommendedAllocation(goal *domain.Goal, profile *domain.Profile) (map[string]decimal.Decimal, error) {
	return c.allocationForHorizon(goal, profile)
}
