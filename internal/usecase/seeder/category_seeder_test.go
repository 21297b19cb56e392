package seeder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avinashn/goalcompass-backend/internal/domain"
)

// MockCategoryRepository is a mock implementation of CategoryRepository for testing
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.GoalCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.GoalCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalCategory), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.GoalCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GoalCategory), args.Error(1)
}

func TestSeed_CreatesMissingCategories(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	repo.On("GetByID", ctx, mock.Anything).Return(nil, domain.NewNotFoundError("category", "missing"))

	var created []*domain.GoalCategory
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = append(created, args.Get(1).(*domain.GoalCategory))
	}).Return(nil)

	s := NewCatalogueSeeder(repo)
	require.NoError(t, s.Seed(ctx))

	require.Len(t, created, 9)
	assert.Equal(t, "Emergency Fund", created[0].Name)
	assert.Equal(t, domain.HierarchySecurity, created[0].HierarchyLevel)
	assert.True(t, created[0].IsFoundation())
}

func TestSeed_ExistingCategoriesLeftAlone(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	repo.On("GetByID", ctx, mock.Anything).Return(&domain.GoalCategory{Name: "existing"}, nil)

	s := NewCatalogueSeeder(repo)
	require.NoError(t, s.Seed(ctx))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeed_EarlyRetirementNestsUnderRetirement(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	repo.On("GetByID", ctx, mock.Anything).Return(nil, domain.NewNotFoundError("category", "missing"))

	byID := make(map[uuid.UUID]*domain.GoalCategory)
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		c := args.Get(1).(*domain.GoalCategory)
		byID[c.ID] = c
	}).Return(nil)

	s := NewCatalogueSeeder(repo)
	require.NoError(t, s.Seed(ctx))

	early := byID[CAT_EARLY_RETIREMENT]
	require.NotNil(t, early)
	require.NotNil(t, early.ParentID)
	assert.Equal(t, CAT_RETIREMENT, *early.ParentID)
	assert.Equal(t, domain.HierarchyRetirement, early.HierarchyLevel)
}
