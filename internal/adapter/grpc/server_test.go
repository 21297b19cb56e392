package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/calculator"
	goalusecase "github.com/avinashn/goalcompass-backend/internal/usecase/goal"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
	"github.com/avinashn/goalcompass-backend/internal/usecase/profilestore"
)

// MockProfileRepository is a mock implementation of ProfileRepository for testing
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileRepository) AppendVersion(ctx context.Context, snapshot *domain.Profile, entry domain.VersionEntry) error {
	args := m.Called(ctx, snapshot, entry)
	return args.Error(0)
}

// MockGoalRepository is a mock implementation of GoalRepository for testing
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGoalRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Goal, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) DeleteByProfile(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

func newTestFacade() (*Server, *MockProfileRepository, *MockGoalRepository) {
	logger := zap.NewNop()
	profileRepo := new(MockProfileRepository)
	goalRepo := new(MockGoalRepository)

	store := params.NewStore(nil, nil, logger)
	registry := calculator.NewRegistry(store, logger)
	profileService := profilestore.NewService(profilestore.NewCache(), profileRepo, goalRepo, logger)
	goalService := goalusecase.NewService(goalRepo, registry, nil, logger)

	return NewServer(profileService, goalService, logger), profileRepo, goalRepo
}

func TestFacade_CreateAndGetProfile(t *testing.T) {
	ctx := context.Background()
	facade, profileRepo, _ := newTestFacade()
	profileRepo.On("Create", ctx, mock.Anything).Return(nil)

	created, err := facade.CreateProfile(ctx, "Asha", "asha@example.com")
	require.NoError(t, err)

	got, err := facade.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestFacade_CreateGoalForUnknownProfile(t *testing.T) {
	ctx := context.Background()
	facade, profileRepo, _ := newTestFacade()
	id := uuid.New()
	profileRepo.On("GetByID", ctx, id).Return(nil, domain.NewNotFoundError("profile", id.String()))

	_, err := facade.CreateGoal(ctx, id, goalusecase.CreateGoalInput{
		Category:  domain.CategoryTravel,
		Title:     "Europe",
		Timeframe: time.Now().AddDate(1, 0, 0),
	})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestFacade_ValidationMapsToInvalidArgument(t *testing.T) {
	ctx := context.Background()
	facade, profileRepo, _ := newTestFacade()
	profileRepo.On("Create", ctx, mock.Anything).Return(nil)

	profile, err := facade.CreateProfile(ctx, "Asha", "asha@example.com")
	require.NoError(t, err)

	_, err = facade.CreateGoal(ctx, profile.ID, goalusecase.CreateGoalInput{
		Category:  domain.CategoryTravel,
		Title:     "", // missing
		Timeframe: time.Now().AddDate(1, 0, 0),
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestFacade_ServiceName(t *testing.T) {
	facade, _, _ := newTestFacade()
	assert.Equal(t, "goalcompass.v1.PlanningService", facade.ServiceName())
}

func TestFacade_ListGoalsOrdered(t *testing.T) {
	ctx := context.Background()
	facade, _, goalRepo := newTestFacade()
	profileID := uuid.New()
	deadline := time.Now().AddDate(2, 0, 0)

	low := domain.NewGoal(profileID, domain.CategoryTravel, "Low", deadline)
	low.Importance = domain.ImportanceLow
	low.Recalculate()
	high := domain.NewGoal(profileID, domain.CategoryTravel, "High", deadline)
	high.Importance = domain.ImportanceHigh
	high.Recalculate()

	goalRepo.On("ListByProfile", ctx, profileID).Return([]*domain.Goal{low, high}, nil)

	goals, err := facade.ListGoals(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "High", goals[0].Title)
}
