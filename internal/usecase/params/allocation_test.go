package params

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationModel_WeightsSumToOne(t *testing.T) {
	s := newTestStore()

	for _, risk := range []string{RiskConservative, RiskModerate, RiskAggressive} {
		model, err := s.AllocationModel(risk)
		require.NoError(t, err, risk)
		require.Len(t, model, 4)

		total := decimal.Zero
		for _, w := range model {
			total = total.Add(w)
		}
		assert.True(t, total.Equal(decimal.NewFromInt(1)), "%s weights sum to %s", risk, total)
	}
}

func TestAllocationModel_UnknownRiskFallsBackToModerate(t *testing.T) {
	s := newTestStore()

	model, err := s.AllocationModel("yolo")
	require.NoError(t, err)
	assert.True(t, model["equity"].Equal(decimal.RequireFromString("0.50")))
}

func TestAllocationModel_OverriddenWeightsMustStillSum(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	// Push equity up without adjusting the rest: the model must refuse.
	require.NoError(t, s.Set(ctx, allocationPath(RiskModerate, "equity"),
		decimal.RequireFromString("0.80"), 20, "tilt", "admin"))

	_, err := s.AllocationModel(RiskModerate)
	assert.Error(t, err)

	// Rebalance debt and the model is valid again.
	require.NoError(t, s.Set(ctx, allocationPath(RiskModerate, "debt"),
		decimal.RequireFromString("0.05"), 20, "tilt", "admin"))
	model, err := s.AllocationModel(RiskModerate)
	require.NoError(t, err)
	assert.True(t, model["equity"].Equal(decimal.RequireFromString("0.80")))
}

func TestBlendedReturn_TracksAllocation(t *testing.T) {
	s := newTestStore()

	aggressive, err := s.BlendedReturn(RiskAggressive)
	require.NoError(t, err)
	conservative, err := s.BlendedReturn(RiskConservative)
	require.NoError(t, err)

	// More equity means a higher expected return.
	assert.True(t, aggressive.GreaterThan(conservative))

	// Aggressive: 0.70*0.12 + 0.20*0.07 + 0.05*0.08 + 0.05*0.04 = 0.104
	assert.True(t, aggressive.Equal(decimal.RequireFromString("0.104")), "got %s", aggressive)
}
