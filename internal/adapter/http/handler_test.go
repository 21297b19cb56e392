package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	"github.com/avinashn/goalcompass-backend/internal/usecase/calculator"
	goalusecase "github.com/avinashn/goalcompass-backend/internal/usecase/goal"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
	"github.com/avinashn/goalcompass-backend/internal/usecase/profilestore"
)

const testToken = "test-token-123"

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

type testEnv struct {
	router       *gin.Engine
	profileRepo  *MockProfileRepository
	goalRepo     *MockGoalRepository
	categoryRepo *MockCategoryRepository
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	profileRepo := new(MockProfileRepository)
	goalRepo := new(MockGoalRepository)
	categoryRepo := new(MockCategoryRepository)

	store := params.NewStore(nil, nil, logger)
	registry := calculator.NewRegistry(store, logger)
	profileService := profilestore.NewService(profilestore.NewCache(), profileRepo, goalRepo, logger)
	goalService := goalusecase.NewService(goalRepo, registry, nil, logger)

	handler := NewHandler(profileService, goalService, store, categoryRepo, logger)
	return &testEnv{
		router:       SetupRouter(handler, testToken),
		profileRepo:  profileRepo,
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_HealthzIsOpen(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndGetProfile(t *testing.T) {
	env := newTestEnv()
	env.profileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := env.do(t, http.MethodPost, "/api/v1/profiles", gin.H{
		"name":  "Asha",
		"email": "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = env.do(t, http.MethodGet, "/api/v1/profiles/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "Asha", got["name"])
}

func TestCreateProfile_MalformedPayload(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodPost, "/api/v1/profiles", gin.H{"name": "no email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGoal_CalculatorSizesEmergencyFund(t *testing.T) {
	env := newTestEnv()
	env.profileRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	env.profileRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	env.goalRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := env.do(t, http.MethodPost, "/api/v1/profiles", gin.H{
		"name":  "Asha",
		"email": "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/profiles/%s/answers", id), gin.H{
		"question_id": domain.QuestionMonthlyExpenses,
		"value":       "60000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/profiles/%s/goals", id), gin.H{
		"category":  string(domain.CategoryEmergencyFund),
		"title":     "Emergency fund",
		"timeframe": time.Now().AddDate(1, 0, 0).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var goal map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal))
	assert.Equal(t, "360000", goal["target_amount"])
	assert.Contains(t, goal, "priority_score")
}

func TestListGoals_LegacyModeOmitsEnhancedFields(t *testing.T) {
	env := newTestEnv()
	profileID := uuid.New()

	g := domain.NewGoal(profileID, domain.CategoryTravel, "Europe", time.Now().AddDate(2, 0, 0))
	env.goalRepo.On("ListByProfile", mock.Anything, profileID).Return([]*domain.Goal{g}, nil)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/profiles/%s/goals?legacy=true", profileID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Goals []map[string]interface{} `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Goals, 1)
	assert.NotContains(t, resp.Goals[0], "priority_score")
	assert.NotContains(t, resp.Goals[0], "goal_success_probability")
}

func TestGetGoal_NotFoundMapsTo404(t *testing.T) {
	env := newTestEnv()
	id := uuid.New()
	env.goalRepo.On("GetByID", mock.Anything, id).Return(nil, domain.NewNotFoundError("goal", id.String()))

	w := env.do(t, http.MethodGet, "/api/v1/goals/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGoal_InvalidID(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/v1/goals/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCategories_ChildReportsParentTier(t *testing.T) {
	env := newTestEnv()

	parentID := uuid.New()
	security := &domain.GoalCategory{
		ID:             uuid.New(),
		Name:           "Emergency Fund",
		OrderIndex:     1,
		HierarchyLevel: domain.HierarchySecurity,
	}
	retirement := &domain.GoalCategory{
		ID:             parentID,
		Name:           "Retirement",
		OrderIndex:     3,
		HierarchyLevel: domain.HierarchyRetirement,
	}
	early := &domain.GoalCategory{
		ID:             uuid.New(),
		Name:           "Early Retirement",
		OrderIndex:     4,
		HierarchyLevel: domain.HierarchyCustom, // stale own tier; the parent's wins
		ParentID:       &parentID,
	}
	env.categoryRepo.On("List", mock.Anything).
		Return([]*domain.GoalCategory{security, retirement, early}, nil)

	w := env.do(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []map[string]interface{} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Categories, 3)

	assert.Equal(t, true, resp.Categories[0]["is_foundation"])
	assert.Equal(t, float64(domain.HierarchyRetirement), resp.Categories[1]["hierarchy_level"])
	assert.Equal(t, float64(domain.HierarchyRetirement), resp.Categories[2]["hierarchy_level"],
		"subcategory inherits the parent's tier")
	assert.Equal(t, false, resp.Categories[2]["is_foundation"])
}

func TestParameterRoundTrip(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/v1/parameters/inflation.general", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "0.06", got["value"])

	w = env.do(t, http.MethodPut, "/api/v1/parameters/inflation.general", gin.H{
		"value":  "0.07",
		"reason": "updated outlook",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/parameters/inflation.general", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "0.07", got["value"])

	w = env.do(t, http.MethodGet, "/api/v1/parameters/inflation.general/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hist struct {
		History []map[string]interface{} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hist))
	require.Len(t, hist.History, 1)
	assert.Equal(t, "0.07", hist.History[0]["new_value"])
	assert.Equal(t, "0.06", hist.History[0]["old_value"], "the built-in default is recorded as the prior value")

	w = env.do(t, http.MethodDelete, "/api/v1/parameters/inflation.general", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/parameters/inflation.general", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "0.06", got["value"], "removing the override re-exposes the default")
}

func TestParameterHistory_UnknownPathIsEmpty(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/api/v1/parameters/no.such.path/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hist struct {
		History []map[string]interface{} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hist))
	assert.Empty(t, hist.History)
}
