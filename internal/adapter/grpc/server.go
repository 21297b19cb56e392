package grpc

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	goalusecase "github.com/avinashn/goalcompass-backend/internal/usecase/goal"
	"github.com/avinashn/goalcompass-backend/internal/usecase/profilestore"
)

// Server is the transport facade over the use-case services. Generated
// protobuf glue binds onto these methods; they translate domain errors to
// gRPC status codes and otherwise delegate straight through.
type Server struct {
	profiles *profilestore.Service
	goals    *goalusecase.Service
	logger   *zap.Logger
}

// NewServer creates the transport facade
func NewServer(profiles *profilestore.Service, goals *goalusecase.Service, logger *zap.Logger) *Server {
	return &Server{
		profiles: profiles,
		goals:    goals,
		logger:   logger,
	}
}

// ServiceName is the fully qualified service name the facade registers
// under. The health service reports it so clients can probe readiness
// before the generated bindings attach.
func (s *Server) ServiceName() string {
	return "goalcompass.v1.PlanningService"
}

// CreateProfile creates a profile and returns the canonical instance
func (s *Server) CreateProfile(ctx context.Context, name, email string) (*domain.Profile, error) {
	profile, err := s.profiles.CreateProfile(ctx, name, email)
	if err != nil {
		return nil, toStatus(err)
	}
	return profile, nil
}

// GetProfile retrieves a profile by id
func (s *Server) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return profile, nil
}

// AddAnswer records a questionnaire response on a profile
func (s *Server) AddAnswer(ctx context.Context, profileID uuid.UUID, questionID, value string) (*domain.Profile, error) {
	profile, err := s.profiles.AddAnswer(ctx, profileID, questionID, value)
	if err != nil {
		return nil, toStatus(err)
	}
	return profile, nil
}

// DeleteProfile removes a profile and all its goals
func (s *Server) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if err := s.profiles.DeleteProfile(ctx, id); err != nil {
		return toStatus(err)
	}
	return nil
}

// CreateGoal creates a goal for a profile
func (s *Server) CreateGoal(ctx context.Context, profileID uuid.UUID, input goalusecase.CreateGoalInput) (*domain.Goal, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, toStatus(err)
	}
	g, err := s.goals.CreateGoal(ctx, profile, input)
	if err != nil {
		return nil, toStatus(err)
	}
	return g, nil
}

// ListGoals returns a profile's goals ordered by priority
func (s *Server) ListGoals(ctx context.Context, profileID uuid.UUID) ([]*domain.Goal, error) {
	goals, err := s.goals.ListGoals(ctx, profileID)
	if err != nil {
		return nil, toStatus(err)
	}
	return goals, nil
}

// DeleteGoal removes a goal
func (s *Server) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	if err := s.goals.DeleteGoal(ctx, id); err != nil {
		return toStatus(err)
	}
	return nil
}

// RequiredSaving returns the monthly and annual contribution for a goal
func (s *Server) RequiredSaving(ctx context.Context, goalID, profileID uuid.UUID) (monthly, annual decimal.Decimal, err error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return decimal.Zero, decimal.Zero, toStatus(err)
	}
	g, err := s.goals.GetGoal(ctx, goalID)
	if err != nil {
		return decimal.Zero, decimal.Zero, toStatus(err)
	}
	monthly, annual, err = s.goals.RequiredSaving(g, profile)
	if err != nil {
		return decimal.Zero, decimal.Zero, toStatus(err)
	}
	return monthly, annual, nil
}

// RefreshProbability reruns the probability analysis for a goal
func (s *Server) RefreshProbability(ctx context.Context, goalID, profileID uuid.UUID, useCache bool) (*domain.Goal, error) {
	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, toStatus(err)
	}
	g, err := s.goals.GetGoal(ctx, goalID)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.goals.RefreshProbability(ctx, g, profile, useCache); err != nil {
		return nil, toStatus(err)
	}
	return g, nil
}

// toStatus maps domain errors onto gRPC status codes
func toStatus(err error) error {
	switch {
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
