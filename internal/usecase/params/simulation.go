package params

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// RunMonteCarloSimulation resolves allocation and iteration parameters and
// hands the request to the external simulation engine. This store owns the
// inputs, never the simulation algorithm. iterations <= 0 uses the
// configured iteration budget.
func (s *Store) RunMonteCarloSimulation(
	ctx context.Context,
	goal *domain.Goal,
	profile *domain.Profile,
	monthlySaving decimal.Decimal,
	iterations int,
) (*domain.ProbabilityResult, error) {
	if s.engine == nil {
		return nil, domain.NewCalculationError("monte_carlo", "no simulation engine attached")
	}

	risk, _ := profile.Answer(domain.QuestionRiskProfile)
	allocation, err := s.AllocationModel(risk)
	if err != nil {
		return nil, err
	}
	expectedReturn, err := s.BlendedReturn(risk)
	if err != nil {
		return nil, err
	}

	if iterations <= 0 {
		budget := s.GetOr(PathSimulationIterations, decimal.NewFromInt(1000))
		iterations = int(budget.IntPart())
	}

	return s.engine.Run(ctx, domain.SimulationRequest{
		Goal:           goal,
		Profile:        profile,
		Iterations:     iterations,
		Allocation:     allocation,
		ExpectedReturn: expectedReturn,
		MonthlySaving:  monthlySaving,
	})
}
