package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StrategyKind tags the concrete funding-strategy variant attached to a goal.
type StrategyKind string

const (
	StrategyKindNone          StrategyKind = ""
	StrategyKindEmergencyFund StrategyKind = "emergency_fund"
	StrategyKindRetirement    StrategyKind = "retirement"
	StrategyKindHomePurchase  StrategyKind = "home_purchase"
	StrategyKindEducation     StrategyKind = "education"
	StrategyKindContribution  StrategyKind = "contribution"
)

// EmergencyFundStrategy configures months of expense coverage.
// Months outside [6,9] are clamped by the calculator.
type EmergencyFundStrategy struct {
	Months int `json:"months"`
}

// RetirementStrategy overrides retirement assumptions for one goal.
// Zero values mean "use the profile answer or the parameter default".
type RetirementStrategy struct {
	RetirementAge  int             `json:"retirement_age,omitempty"`
	LifeExpectancy int             `json:"life_expectancy,omitempty"`
	MonthlyExpense decimal.Decimal `json:"monthly_expense,omitempty"`
}

// HomePurchaseStrategy holds the property price and down-payment fraction.
type HomePurchaseStrategy struct {
	PropertyValue      decimal.Decimal `json:"property_value"`
	DownPaymentPercent decimal.Decimal `json:"down_payment_percent"`
}

// EducationStrategy holds the cost of the course in today's money.
type EducationStrategy struct {
	CurrentCost decimal.Decimal `json:"current_cost"`
}

// ContributionPlan is the generic recurring-contribution strategy.
type ContributionPlan struct {
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	StepUpPercent decimal.Decimal `json:"step_up_percent,omitempty"`
}

// FundingStrategy is a tagged variant: exactly one of the pointer fields
// matching Kind is set. It is decoded once at the storage boundary so
// calculators consume typed data, never raw JSON maps.
type FundingStrategy struct {
	Kind          StrategyKind
	EmergencyFund *EmergencyFundStrategy
	Retirement    *RetirementStrategy
	HomePurchase  *HomePurchaseStrategy
	Education     *EducationStrategy
	Contribution  *ContributionPlan
}

// IsZero reports whether no strategy is attached
func (f FundingStrategy) IsZero() bool {
	return f.Kind == StrategyKindNone
}

// fundingEnvelope is the wire form stored in the goals.funding_strategy column.
type fundingEnvelope struct {
	Kind          StrategyKind           `json:"kind"`
	EmergencyFund *EmergencyFundStrategy `json:"emergency_fund,omitempty"`
	Retirement    *RetirementStrategy    `json:"retirement,omitempty"`
	HomePurchase  *HomePurchaseStrategy  `json:"home_purchase,omitempty"`
	Education     *EducationStrategy     `json:"education,omitempty"`
	Contribution  *ContributionPlan      `json:"contribution,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (f FundingStrategy) MarshalJSON() ([]byte, error) {
	return json.Marshal(fundingEnvelope{
		Kind:          f.Kind,
		EmergencyFund: f.EmergencyFund,
		Retirement:    f.Retirement,
		HomePurchase:  f.HomePurchase,
		Education:     f.Education,
		Contribution:  f.Contribution,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Variants not matching Kind are dropped so a corrupt row cannot produce a
// strategy with two active variants.
func (f *FundingStrategy) UnmarshalJSON(data []byte) error {
	var env fundingEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*f = FundingStrategy{Kind: env.Kind}
	switch env.Kind {
	case StrategyKindEmergencyFund:
		f.EmergencyFund = env.EmergencyFund
	case StrategyKindRetirement:
		f.Retirement = env.Retirement
	case StrategyKindHomePurchase:
		f.HomePurchase = env.HomePurchase
	case StrategyKindEducation:
		f.Education = env.Education
	case StrategyKindContribution:
		f.Contribution = env.Contribution
	}
	return nil
}

// Validate ensures the tagged variant is internally consistent
func (f FundingStrategy) Validate() error {
	switch f.Kind {
	case StrategyKindNone:
		return nil
	case StrategyKindEmergencyFund:
		if f.EmergencyFund == nil {
			return NewValidationError("funding_strategy", "emergency_fund variant missing")
		}
	case StrategyKindRetirement:
		if f.Retirement == nil {
			return NewValidationError("funding_strategy", "retirement variant missing")
		}
	case StrategyKindHomePurchase:
		if f.HomePurchase == nil {
			return NewValidationError("funding_strategy", "home_purchase variant missing")
		}
		if f.HomePurchase.DownPaymentPercent.IsNegative() || f.HomePurchase.DownPaymentPercent.GreaterThan(decimal.NewFromInt(1)) {
			return NewValidationError("funding_strategy", "down_payment_percent must be in [0,1]")
		}
	case StrategyKindEducation:
		if f.Education == nil {
			return NewValidationError("funding_strategy", "education variant missing")
		}
	case StrategyKindContribution:
		if f.Contribution == nil {
			return NewValidationError("funding_strategy", "contribution variant missing")
		}
	default:
		return NewValidationError("funding_strategy", "unknown strategy kind "+string(f.Kind))
	}
	return nil
}
