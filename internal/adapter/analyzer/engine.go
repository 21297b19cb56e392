package analyzer

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// horizonCapMonths bounds the search for when a projection reaches its
// target. A goal not reached within a century is reported as never reached.
const horizonCapMonths = 1200

// DeterministicEngine is the built-in simulation engine: a single projected
// path at the blended expected return, no randomness. Deployments with a
// real Monte Carlo service swap it out at composition time; everything else
// keeps working against the same interface.
type DeterministicEngine struct{}

// NewDeterministicEngine creates the built-in engine
func NewDeterministicEngine() *DeterministicEngine {
	return &DeterministicEngine{}
}

// Run projects the corpus month by month at the blended return
func (e *DeterministicEngine) Run(ctx context.Context, req domain.SimulationRequest) (*domain.ProbabilityResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Goal == nil {
		return nil, domain.NewCalculationError("simulation", "request carries no goal")
	}

	monthlyRate := req.ExpectedReturn.Div(decimal.NewFromInt(12))
	one := decimal.NewFromInt(1)
	growth := one.Add(monthlyRate)

	deadlineMonths := monthsUntil(req.Goal.Timeframe)
	target := req.Goal.TargetAmount

	corpus := req.Goal.CurrentAmount
	terminal := corpus
	reachedMonth := 0
	for month := 1; month <= horizonCapMonths; month++ {
		corpus = corpus.Mul(growth).Add(req.MonthlySaving)
		if month == deadlineMonths {
			terminal = corpus
		}
		if reachedMonth == 0 && target.IsPositive() && corpus.GreaterThanOrEqual(target) {
			reachedMonth = month
		}
		if reachedMonth > 0 && month >= deadlineMonths {
			break
		}
	}
	if deadlineMonths > horizonCapMonths {
		terminal = corpus
	}

	result := &domain.ProbabilityResult{
		SuccessProbability: successProbability(terminal, target),
		Percentiles: map[int]decimal.Decimal{
			10: terminal,
			25: terminal,
			50: terminal,
			75: terminal,
			90: terminal,
		},
		Iterations: req.Iterations,
		ComputedAt: time.Now().UTC(),
	}
	if reachedMonth > 0 {
		result.TimeMetrics.MedianYearsToTarget = round2(float64(reachedMonth) / 12)
		if reachedMonth <= deadlineMonths {
			result.TimeMetrics.OnTrackByDeadlinePct = 100
		}
	}
	return result, nil
}

// successProbability maps the terminal-to-target ratio onto [0,95]. A
// single deterministic path never justifies certainty, so 95 is the cap.
func successProbability(terminal, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 95
	}
	ratio, _ := terminal.Div(target).Float64()
	p := ratio * 95
	if p > 95 {
		p = 95
	}
	if p < 0 {
		p = 0
	}
	return round2(p)
}

func monthsUntil(deadline time.Time) int {
	days := int(time.Until(deadline).Hours() / 24)
	months := days / 30
	if months < 1 {
		months = 1
	}
	return months
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
