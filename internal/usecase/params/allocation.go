package params

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// weightTolerance bounds floating drift when allocation weights are
// overridden individually.
var weightTolerance = decimal.RequireFromString("0.000000001")

// AllocationModel resolves the asset-class weights for a risk profile.
// Weights layer through the same override mechanism as any parameter
// (paths "asset_allocation.<risk>.<class>") and must sum to 1.
// An unrecognized risk profile falls back to moderate with a warning.
func (s *Store) AllocationModel(risk string) (map[string]decimal.Decimal, error) {
	switch risk {
	case RiskConservative, RiskModerate, RiskAggressive:
	default:
		s.logger.Warn("unknown risk profile, using moderate",
			zap.String("risk_profile", risk))
		risk = RiskModerate
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	model := make(map[string]decimal.Decimal, len(assetClasses))
	total := decimal.Zero
	for _, class := range assetClasses {
		w, err := s.getLocked(allocationPath(risk, class))
		if err != nil {
			return nil, err
		}
		model[class] = w
		total = total.Add(w)
	}

	if total.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(weightTolerance) {
		return nil, domain.NewCalculationError("allocation_model",
			"weights for "+risk+" sum to "+total.String()+", expected 1")
	}
	return model, nil
}

// BlendedReturn computes the expected annual return of a risk profile's
// allocation from the per-class return assumptions.
func (s *Store) BlendedReturn(risk string) (decimal.Decimal, error) {
	model, err := s.AllocationModel(risk)
	if err != nil {
		return decimal.Zero, err
	}

	blended := decimal.Zero
	for class, weight := range model {
		r, err := s.Get("asset_returns." + class)
		if err != nil {
			return decimal.Zero, err
		}
		blended = blended.Add(weight.Mul(r))
	}
	return blended, nil
}
