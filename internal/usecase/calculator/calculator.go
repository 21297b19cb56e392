// Package calculator implements the category-specific goal calculators.
// Each calculator is a pure function of (goal, profile, parameter store):
// no instance carries call-to-call state, so any number of requests may
// share one calculator concurrently.
package calculator

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
)

// Calculator is the common contract every category implements.
type Calculator interface {
	// AmountNeeded computes the target amount for the goal
	AmountNeeded(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error)

	// RequiredMonthlySaving computes the monthly contribution that closes
	// the funding gap by the timeframe. Zero, never negative, when the
	// current amount already covers the target.
	RequiredMonthlySaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error)

	// RequiredAnnualSaving is the annual variant of the required saving
	RequiredAnnualSaving(goal *domain.Goal, profile *domain.Profile) (decimal.Decimal, error)

	// SuccessProbability is a coarse heuristic in [0,100]. The precise
	// Monte Carlo estimate is the external analyzer's and overwrites this.
	SuccessProbability(goal *domain.Goal, profile *domain.Profile) (float64, error)

	// RecommendedAllocation returns asset-class weights for the goal
	RecommendedAllocation(goal *domain.Goal, profile *domain.Profile) (map[string]decimal.Decimal, error)
}

// Registry dispatches goals to their category calculator.
type Registry struct {
	emergency  *EmergencyFundCalculator
	retirement *RetirementCalculator
	home       *HomeDownPaymentCalculator
	education  *EducationCalculator
	generic    *GenericCalculator
}

// NewRegistry creates the calculator family over one parameter store
func NewRegistry(store *params.Store, logger *zap.Logger) *Registry {
	base := base{params: store, logger: logger}
	return &Registry{
		emergency:  &EmergencyFundCalculator{base},
		retirement: &RetirementCalculator{base},
		home:       &HomeDownPaymentCalculator{base},
		education:  &EducationCalculator{base},
		generic:    &GenericCalculator{base},
	}
}

// ForGoal selects the calculator for a goal's category. Unrecognized
// categories get the generic calculator; dispatch never fails.
func (r *Registry) ForGoal(goal *domain.Goal) Calculator {
	switch goal.Category {
	case domain.CategoryEmergencyFund:
		return r.emergency
	case domain.CategoryTraditionalRetirement, domain.CategoryEarlyRetirement:
		return r.retirement
	case domain.CategoryHomePurchase:
		return r.home
	case domain.CategoryEducation:
		return r.education
	default:
		return r.generic
	}
}

// base carries the shared collaborators and the math common to all
// categories. It holds no mutable state.
type base struct {
	params *params.Store
	logger *zap.Logger
}

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// monthsToGoal returns whole months until the timeframe, at least 1 so
// annuity math never divides a zero horizon.
func monthsToGoal(goal *domain.Goal) int64 {
	months := int64(time.Until(goal.Timeframe).Hours() / (24 * 30))
	if months < 1 {
		return 1
	}
	return months
}

// yearsToGoal returns whole years until the timeframe, at least 0
func yearsToGoal(goal *domain.Goal) int64 {
	years := int64(time.Until(goal.Timeframe).Hours() / (24 * 365))
	if years < 0 {
		return 0
	}
	return years
}

// compound computes amount * (1+rate)^periods
func compound(amount, rate decimal.Decimal, periods int64) decimal.Decimal {
	if periods <= 0 {
		return amount
	}
	return amount.Mul(one.Add(rate).Pow(decimal.NewFromInt(periods)))
}

// annuityFactor is the future value of 1/month over n months at the given
// monthly rate: ((1+i)^n - 1) / i, degenerating to n when i is zero.
func annuityFactor(monthlyRate decimal.Decimal, months int64) decimal.Decimal {
	n := decimal.NewFromInt(months)
	if monthlyRate.IsZero() {
		return n
	}
	return one.Add(monthlyRate).Pow(n).Sub(one).Div(monthlyRate)
}

// riskProfile reads the profile's risk answer, defaulting to moderate
func (b base) riskProfile(profile *domain.Profile) string {
	risk, ok := profile.Answer(domain.QuestionRiskProfile)
	if !ok {
		return params.RiskModerate
	}
	return risk
}

// monthlyExpenses resolves the profile's monthly expenses, degrading to
// half of income when the expenses answer is absent.
func (b base) monthlyExpenses(profile *domain.Profile) decimal.Decimal {
	if expenses, ok := profile.DecimalAnswer(domain.QuestionMonthlyExpenses); ok {
		return expenses
	}
	if income, ok := profile.DecimalAnswer(domain.QuestionMonthlyIncome); ok {
		b.logger.Warn("monthly expenses missing, estimating from income",
			zap.String("profile_id", profile.ID.String()))
		return income.Div(decimal.NewFromInt(2))
	}
	b.logger.Warn("no expense or income answers on profile",
		zap.String("profile_id", profile.ID.String()))
	return decimal.Zero
}

// requiredMonthly closes the gap between the target and the grown current
// amount with a level monthly contribution earning the blended return.
func (b base) requiredMonthly(goal *domain.Goal, profile *domain.Profile, target decimal.Decimal) (decimal.Decimal, error) {
	return b.requiredMonthlyOver(profile, goal.CurrentAmount, target, monthsToGoal(goal))
}

// requiredMonthlyOver is requiredMonthly with an explicit horizon, for
// categories whose horizon is not the goal timeframe (retirement).
func (b base) requiredMonthlyOver(profile *domain.Profile, current, target decimal.Decimal, months int64) (decimal.Decimal, error) {
	if target.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	if months < 1 {
		months = 1
	}

	annualReturn, err := b.params.BlendedReturn(b.riskProfile(profile))
	if err != nil {
		return decimal.Zero, err
	}

	monthlyRate := annualReturn.Div(twelve)
	grownCurrent := compound(current, monthlyRate, months)
	gap := target.Sub(grownCurrent)
	if gap.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	return gap.Div(annuityFactor(monthlyRate, months)), nil
}

// successHeuristic maps funding feasibility and progress to [0,100].
func (b base) successHeuristic(goal *domain.Goal, profile *domain.Profile, requiredMonthly decimal.Decimal) float64 {
	if requiredMonthly.LessThanOrEqual(decimal.Zero) {
		return 95
	}

	capacity, ok := profile.DecimalAnswer(domain.QuestionSavingsCapacity)
	if !ok {
		if income, incomeOK := profile.DecimalAnswer(domain.QuestionMonthlyIncome); incomeOK {
			capacity = income.Sub(b.monthlyExpenses(profile))
		}
	}
	if capacity.LessThanOrEqual(decimal.Zero) {
		// Nothing to reason with; lean on progress alone.
		return clampPercent(30 + goal.CurrentProgress/2)
	}

	ratio, _ := capacity.Div(requiredMonthly).Float64()
	if ratio >= 1 {
		return clampPercent(85 + (ratio-1)*10)
	}
	return clampPercent(20 + 60*ratio + goal.CurrentProgress*0.1)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 95 {
		return 95
	}
	return v
}

// allocationForHorizon picks an allocation model: short horizons are forced
// conservative, medium horizons cap at moderate, long horizons follow the
// profile's risk appetite.
func (b base) allocationForHorizon(goal *domain.Goal, profile *domain.Profile) (map[string]decimal.Decimal, error) {
	years := yearsToGoal(goal)
	risk := b.riskProfile(profile)
	switch {
	case years < 3:
		risk = params.RiskConservative
	case years < 7 && risk == params.RiskAggressive:
		risk = params.RiskModerate
	}
	return b.params.AllocationModel(risk)
}
