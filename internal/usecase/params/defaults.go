package params

import "github.com/shopspring/decimal"

// Well-known parameter paths. Every path listed here has a built-in
// default below, so resolution never fails for them.
const (
	PathInflationGeneral   = "inflation.general"
	PathInflationEducation = "inflation.education"

	PathReturnEquity = "asset_returns.equity"
	PathReturnDebt   = "asset_returns.debt"
	PathReturnGold   = "asset_returns.gold"
	PathReturnCash   = "asset_returns.cash"

	PathEmergencyMonths = "emergency_fund.months_of_coverage"

	PathRetirementAge       = "retirement.age"
	PathLifeExpectancy      = "retirement.life_expectancy"
	PathCorpusMultiplier    = "retirement.corpus_multiplier"
	PathDownPaymentPercent  = "home.down_payment_percent"
	PathPriceIncomeMultiple = "home.price_to_income_multiple"

	PathSimulationIterations = "simulation.iterations"
)

// Asset classes every allocation model covers.
var assetClasses = []string{"equity", "debt", "gold", "cash"}

// Recognized risk profiles.
const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)

func allocationPath(risk, class string) string {
	return "asset_allocation." + risk + "." + class
}

// builtinDefaults is the documented default for every known path.
// Rates are annual fractions; amounts are INR.
func builtinDefaults() map[string]decimal.Decimal {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return map[string]decimal.Decimal{
		PathInflationGeneral:   d("0.06"),
		PathInflationEducation: d("0.08"),

		PathReturnEquity: d("0.12"),
		PathReturnDebt:   d("0.07"),
		PathReturnGold:   d("0.08"),
		PathReturnCash:   d("0.04"),

		PathEmergencyMonths: d("6"),

		PathRetirementAge:       d("60"),
		PathLifeExpectancy:      d("85"),
		PathCorpusMultiplier:    d("25"), // 4% safe withdrawal
		PathDownPaymentPercent:  d("0.20"),
		PathPriceIncomeMultiple: d("4"),

		PathSimulationIterations: d("1000"),

		allocationPath(RiskConservative, "equity"): d("0.20"),
		allocationPath(RiskConservative, "debt"):   d("0.60"),
		allocationPath(RiskConservative, "gold"):   d("0.10"),
		allocationPath(RiskConservative, "cash"):   d("0.10"),

		allocationPath(RiskModerate, "equity"): d("0.50"),
		allocationPath(RiskModerate, "debt"):   d("0.35"),
		allocationPath(RiskModerate, "gold"):   d("0.10"),
		allocationPath(RiskModerate, "cash"):   d("0.05"),

		allocationPath(RiskAggressive, "equity"): d("0.70"),
		allocationPath(RiskAggressive, "debt"):   d("0.20"),
		allocationPath(RiskAggressive, "gold"):   d("0.05"),
		allocationPath(RiskAggressive, "cash"):   d("0.05"),
	}
}
