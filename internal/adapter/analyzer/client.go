// Package analyzer adapts the in-process simulation engine and a result
// cache into the probability analyzer the goal service depends on.
package analyzer

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/calculator"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
)

// Client implements domain.ProbabilityAnalyzer. It resolves the saving
// input, consults the result cache when permitted, and otherwise runs the
// simulation through the parameter store.
type Client struct {
	store       *params.Store
	calculators *calculator.Registry
	cache       *ResultCache
	logger      *zap.Logger
}

// NewClient creates an analyzer client
func NewClient(store *params.Store, calculators *calculator.Registry, cache *ResultCache, logger *zap.Logger) *Client {
	return &Client{
		store:       store,
		calculators: calculators,
		cache:       cache,
		logger:      logger,
	}
}

// AnalyzeGoalProbability runs (or replays) the simulation for a goal.
// The simulated contribution is the profile's stated savings capacity;
// absent that, the calculator's required monthly saving stands in.
func (c *Client) AnalyzeGoalProbability(ctx context.Context, goal *domain.Goal, profile *domain.Profile, useCache bool) (*domain.ProbabilityResult, error) {
	monthlySaving, ok := profile.DecimalAnswer(domain.QuestionSavingsCapacity)
	if !ok {
		required, err := c.calculators.ForGoal(goal).RequiredMonthlySaving(goal, profile)
		if err != nil {
			return nil, err
		}
		monthlySaving = required
		c.logger.Debug("no savings capacity answered, simulating the required contribution",
			zap.String("goal_id", goal.ID.String()),
			zap.String("monthly_saving", monthlySaving.String()))
	}

	budget := c.store.GetOr(params.PathSimulationIterations, decimal.NewFromInt(1000))
	iterations := int(budget.IntPart())

	fingerprint := Fingerprint(goal, profile, monthlySaving, iterations)
	if useCache {
		if cached, hit := c.cache.Get(fingerprint); hit {
			return cached, nil
		}
	}

	result, err := c.store.RunMonteCarloSimulation(ctx, goal, profile, monthlySaving, iterations)
	if err != nil {
		return nil, err
	}

	c.cache.Put(fingerprint, result)
	return result, nil
}

// CacheStats exposes the result cache counters for diagnostics
func (c *Client) CacheStats() CacheStats {
	return c.cache.Stats()
}
