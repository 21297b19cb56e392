package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SimulationRequest carries the resolved inputs for one Monte Carlo run.
// The parameter store assembles it; the engine never reads parameters
// itself.
type SimulationRequest struct {
	Goal           *Goal
	Profile        *Profile
	Iterations     int
	Allocation     map[string]decimal.Decimal // asset class -> weight
	ExpectedReturn decimal.Decimal            // annual, blended by allocation
	MonthlySaving  decimal.Decimal
}

// TimeMetrics summarizes when the simulated paths reach the target.
type TimeMetrics struct {
	MedianYearsToTarget  float64 `json:"median_years_to_target"`
	OnTrackByDeadlinePct float64 `json:"on_track_by_deadline_pct"`
}

// ProbabilityResult is the analyzer's verdict for one goal.
type ProbabilityResult struct {
	SuccessProbability float64                 `json:"success_probability"` // percent, [0,100]
	Percentiles        map[int]decimal.Decimal `json:"percentiles"`         // percentile -> terminal corpus
	TimeMetrics        TimeMetrics             `json:"time_based_metrics"`
	Iterations         int                     `json:"iterations"`
	ComputedAt         time.Time               `json:"computed_at"`
	FromCache          bool                    `json:"-"`
}

// SimulationEngine runs the deep Monte Carlo simulation. It lives outside
// this core; it may be long-running and must always be given an explicit
// iteration budget through the request.
type SimulationEngine interface {
	Run(ctx context.Context, req SimulationRequest) (*ProbabilityResult, error)
}

// ProbabilityAnalyzer is the external collaborator producing the precise
// success estimate written onto goals. useCache permits substituting a
// cached prior result for an identical request.
type ProbabilityAnalyzer interface {
	AnalyzeGoalProbability(ctx context.Context, goal *Goal, profile *Profile, useCache bool) (*ProbabilityResult, error)
}
