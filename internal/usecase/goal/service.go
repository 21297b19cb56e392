// Package goal owns the goal lifecycle: created goals get their target and
// a seed probability from the category calculator, updates always recompute
// the derived scores, deletion is terminal.
package goal

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/calculator"
)

// CreateGoalInput represents the input for creating a goal
type CreateGoalInput struct {
	Category        domain.Category
	Title           string
	TargetAmount    decimal.Decimal // zero lets the calculator fill it
	CurrentAmount   decimal.Decimal
	Timeframe       time.Time
	Importance      domain.Importance
	Flexibility     domain.Flexibility
	Notes           string
	FundingStrategy domain.FundingStrategy
}

// Service handles goal operations for profiles
type Service struct {
	goals       domain.GoalRepository
	calculators *calculator.Registry
	analyzer    domain.ProbabilityAnalyzer // nil until an analyzer is attached
	logger      *zap.Logger
}

// NewService creates a goal service
func NewService(goals domain.GoalRepository, calculators *calculator.Registry, analyzer domain.ProbabilityAnalyzer, logger *zap.Logger) *Service {
	return &Service{
		goals:       goals,
		calculators: calculators,
		analyzer:    analyzer,
		logger:      logger,
	}
}

// CreateGoal validates the input, lets the category calculator fill the
// target amount and seed the success probability, and persists the goal.
func (s *Service) CreateGoal(ctx context.Context, profile *domain.Profile, input CreateGoalInput) (*domain.Goal, error) {
	g := domain.NewGoal(profile.ID, input.Category, input.Title, input.Timeframe)
	if input.Importance != "" {
		g.Importance = input.Importance
	}
	if input.Flexibility != "" {
		g.Flexibility = input.Flexibility
	}
	g.TargetAmount = input.TargetAmount
	g.CurrentAmount = input.CurrentAmount
	g.Notes = input.Notes
	g.FundingStrategy = input.FundingStrategy

	if err := g.Validate(); err != nil {
		return nil, err
	}

	calc := s.calculators.ForGoal(g)

	if !g.TargetAmount.IsPositive() {
		amount, err := calc.AmountNeeded(g, profile)
		if err != nil {
			// Parameter or calculation trouble degrades to the explicit
			// target instead of blocking the create.
			s.logger.Warn("calculator could not size goal, keeping explicit target",
				zap.String("goal_id", g.ID.String()),
				zap.Error(err))
		} else {
			g.TargetAmount = amount
		}
	}

	probability, err := calc.SuccessProbability(g, profile)
	if err != nil {
		s.logger.Warn("coarse probability unavailable",
			zap.String("goal_id", g.ID.String()),
			zap.Error(err))
	} else {
		g.SuccessProbability = probability
	}

	g.Recalculate()

	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// GetGoal retrieves a goal by id
func (s *Service) GetGoal(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, id)
}

// UpdateGoal validates the mutated goal, recomputes the derived fields and
// persists it. Priority and progress are never stale after an update.
func (s *Service) UpdateGoal(ctx context.Context, goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	goal.Recalculate()
	goal.UpdatedAt = time.Now().UTC()
	return s.goals.Update(ctx, goal)
}

// ListGoals returns a profile's goals ordered by priority score, highest
// first, for display.
func (s *Service) ListGoals(ctx context.Context, profileID uuid.UUID) ([]*domain.Goal, error) {
	goals, err := s.goals.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].PriorityScore > goals[j].PriorityScore
	})
	return goals, nil
}

// DeleteGoal removes a goal. Terminal: there is no undelete.
func (s *Service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.goals.Delete(ctx, id)
}

// RequiredSaving exposes the calculator's monthly and annual contribution
// for a goal.
func (s *Service) RequiredSaving(goal *domain.Goal, profile *domain.Profile) (monthly, annual decimal.Decimal, err error) {
	calc := s.calculators.ForGoal(goal)
	monthly, err = calc.RequiredMonthlySaving(goal, profile)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	annual, err = calc.RequiredAnnualSaving(goal, profile)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return monthly, annual, nil
}

// RefreshProbability asks the external analyzer for the precise success
// estimate and writes it onto the goal. useCache allows the analyzer to
// substitute a cached prior result.
func (s *Service) RefreshProbability(ctx context.Context, goal *domain.Goal, profile *domain.Profile, useCache bool) error {
	if s.analyzer == nil {
		return domain.NewCalculationError("probability_refresh", "no analyzer attached")
	}

	result, err := s.analyzer.AnalyzeGoalProbability(ctx, goal, profile, useCache)
	if err != nil {
		return err
	}

	goal.SuccessProbability = result.SuccessProbability
	return s.UpdateGoal(ctx, goal)
}
