// Package http serves the JSON API over gin. Handlers bind request
// payloads, delegate to the use-case services and map domain errors onto
// HTTP status codes.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/avinashn/goalcompass-backend/internal/domain"
	goalusecase "github.com/avinashn/goalcompass-backend/internal/usecase/goal"
	"github.com/avinashn/goalcompass-backend/internal/usecase/params"
	"github.com/avinashn/goalcompass-backend/internal/usecase/profilestore"
)

// Handler carries the handler functions for every API endpoint
type Handler struct {
	profiles   *profilestore.Service
	goals      *goalusecase.Service
	store      *params.Store
	categories domain.CategoryRepository
	logger     *zap.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(profiles *profilestore.Service, goals *goalusecase.Service, store *params.Store, categories domain.CategoryRepository, logger *zap.Logger) *Handler {
	return &Handler{
		profiles:   profiles,
		goals:      goals,
		store:      store,
		categories: categories,
		logger:     logger,
	}
}

// --- Profile handlers ---

// CreateProfileRequest is the JSON payload for profile creation
type CreateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// POST /api/v1/profiles
func (h *Handler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.CreateProfile(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profileResponse(profile))
}

// GET /api/v1/profiles/:id
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}

// DELETE /api/v1/profiles/:id
func (h *Handler) DeleteProfile(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.profiles.DeleteProfile(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddAnswerRequest is the JSON payload for recording one questionnaire answer
type AddAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Value      string `json:"value" binding:"required"`
}

// POST /api/v1/profiles/:id/answers
func (h *Handler) AddAnswer(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req AddAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.AddAnswer(c.Request.Context(), id, req.QuestionID, req.Value)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}

// CreateVersionRequest is the JSON payload for snapshotting a profile
type CreateVersionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// POST /api/v1/profiles/:id/versions
func (h *Handler) CreateVersion(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	entry, err := h.profiles.CreateVersion(c.Request.Context(), profile, req.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// --- Goal handlers ---

// CreateGoalRequest is the JSON payload for goal creation. target_amount
// may be omitted; the category calculator then sizes the goal.
type CreateGoalRequest struct {
	Category        string                  `json:"category" binding:"required"`
	Title           string                  `json:"title" binding:"required"`
	TargetAmount    string                  `json:"target_amount"`
	CurrentAmount   string                  `json:"current_amount"`
	Timeframe       time.Time               `json:"timeframe" binding:"required"`
	Importance      string                  `json:"importance"`
	Flexibility     string                  `json:"flexibility"`
	Notes           string                  `json:"notes"`
	FundingStrategy *domain.FundingStrategy `json:"funding_strategy"`
}

// POST /api/v1/profiles/:id/goals
func (h *Handler) CreateGoal(c *gin.Context) {
	profileID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := goalusecase.CreateGoalInput{
		Category:    domain.Category(req.Category),
		Title:       req.Title,
		Timeframe:   req.Timeframe,
		Importance:  domain.Importance(req.Importance),
		Flexibility: domain.Flexibility(req.Flexibility),
		Notes:       req.Notes,
	}
	if req.FundingStrategy != nil {
		input.FundingStrategy = *req.FundingStrategy
	}

	var err error
	if input.TargetAmount, err = amountOrZero(req.TargetAmount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_amount is not numeric"})
		return
	}
	if input.CurrentAmount, err = amountOrZero(req.CurrentAmount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current_amount is not numeric"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	g, err := h.goals.CreateGoal(c.Request.Context(), profile, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, g.ToRecord(legacyMode(c)))
}

// GET /api/v1/profiles/:id/goals
func (h *Handler) ListGoals(c *gin.Context) {
	profileID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	goals, err := h.goals.ListGoals(c.Request.Context(), profileID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	legacy := legacyMode(c)
	records := make([]domain.GoalRecord, 0, len(goals))
	for _, g := range goals {
		records = append(records, g.ToRecord(legacy))
	}

	c.JSON(http.StatusOK, gin.H{"goals": records})
}

// GET /api/v1/goals/:id
func (h *Handler) GetGoal(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	g, err := h.goals.GetGoal(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.ToRecord(legacyMode(c)))
}

// UpdateGoalRequest is the JSON payload for mutating a goal. Only provided
// fields change.
type UpdateGoalRequest struct {
	Title         *string    `json:"title"`
	TargetAmount  *string    `json:"target_amount"`
	CurrentAmount *string    `json:"current_amount"`
	Timeframe     *time.Time `json:"timeframe"`
	Importance    *string    `json:"importance"`
	Flexibility   *string    `json:"flexibility"`
	Notes         *string    `json:"notes"`
}

// PATCH /api/v1/goals/:id
func (h *Handler) UpdateGoal(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := h.goals.GetGoal(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.TargetAmount != nil {
		if g.TargetAmount, err = decimal.NewFromString(*req.TargetAmount); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target_amount is not numeric"})
			return
		}
	}
	if req.CurrentAmount != nil {
		if g.CurrentAmount, err = decimal.NewFromString(*req.CurrentAmount); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current_amount is not numeric"})
			return
		}
	}
	if req.Timeframe != nil {
		g.Timeframe = *req.Timeframe
	}
	if req.Importance != nil {
		g.Importance = domain.Importance(*req.Importance)
	}
	if req.Flexibility != nil {
		g.Flexibility = domain.Flexibility(*req.Flexibility)
	}
	if req.Notes != nil {
		g.Notes = *req.Notes
	}

	if err := h.goals.UpdateGoal(c.Request.Context(), g); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.ToRecord(legacyMode(c)))
}

// DELETE /api/v1/goals/:id
func (h *Handler) DeleteGoal(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.goals.DeleteGoal(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/v1/goals/:id/required-saving?profile_id=...
func (h *Handler) RequiredSaving(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	profileID, err := uuid.Parse(c.Query("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile_id"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	g, err := h.goals.GetGoal(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	monthly, annual, err := h.goals.RequiredSaving(g, profile)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goal_id":        g.ID,
		"monthly_saving": monthly.String(),
		"annual_saving":  annual.String(),
	})
}

// RefreshProbabilityRequest is the JSON payload for a probability rerun
type RefreshProbabilityRequest struct {
	ProfileID string `json:"profile_id" binding:"required"`
	UseCache  bool   `json:"use_cache"`
}

// POST /api/v1/goals/:id/probability
func (h *Handler) RefreshProbability(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req RefreshProbabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile_id"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	g, err := h.goals.GetGoal(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if err := h.goals.RefreshProbability(c.Request.Context(), g, profile, req.UseCache); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.ToRecord(legacyMode(c)))
}

// --- Category handlers ---

// GET /api/v1/categories
// Subcategories report their parent's hierarchy tier, so ordering by the
// returned level always matches the catalogue's priority ordering.
func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	byID := make(map[uuid.UUID]*domain.GoalCategory, len(cats))
	for _, cat := range cats {
		byID[cat.ID] = cat
	}

	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		var parent *domain.GoalCategory
		if cat.ParentID != nil {
			parent = byID[*cat.ParentID]
		}
		level := cat.EffectiveLevel(parent)
		out = append(out, gin.H{
			"id":              cat.ID,
			"name":            cat.Name,
			"description":     cat.Description,
			"order_index":     cat.OrderIndex,
			"hierarchy_level": level,
			"is_foundation":   level == domain.HierarchySecurity,
			"parent_id":       cat.ParentID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// --- Parameter handlers ---

// GET /api/v1/parameters/:path
func (h *Handler) GetParameter(c *gin.Context) {
	path := c.Param("path")

	value, err := h.store.Get(path)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path, "value": value.String()})
}

// SetParameterRequest is the JSON payload for an admin parameter override
type SetParameterRequest struct {
	Value  string `json:"value" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// PUT /api/v1/parameters/:path
func (h *Handler) SetParameter(c *gin.Context) {
	path := c.Param("path")

	var req SetParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is not numeric"})
		return
	}

	if err := h.store.Set(c.Request.Context(), path, value, domain.PriorityAdmin, req.Reason, "api"); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path, "value": value.String()})
}

// DELETE /api/v1/parameters/:path
func (h *Handler) RemoveParameter(c *gin.Context) {
	path := c.Param("path")

	if err := h.store.Remove(c.Request.Context(), path, domain.PriorityAdmin); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/v1/parameters/:path/history
func (h *Handler) ParameterHistory(c *gin.Context) {
	path := c.Param("path")

	entries := h.store.History(path)
	history := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		item := gin.H{
			"path":            e.Path,
			"new_value":       e.NewValue.String(),
			"source_priority": e.SourcePriority,
			"reason":          e.Reason,
			"source":          e.Source,
			"timestamp":       e.Timestamp,
		}
		if e.OldValue != nil {
			item["old_value"] = e.OldValue.String()
		}
		history = append(history, item)
	}

	c.JSON(http.StatusOK, gin.H{"path": path, "history": history})
}

// --- helpers ---

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func amountOrZero(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// legacyMode honors the ?legacy=true query flag: enhanced goal fields are
// omitted from responses for older consumers.
func legacyMode(c *gin.Context) bool {
	return c.Query("legacy") == "true"
}

func profileResponse(p *domain.Profile) gin.H {
	return gin.H{
		"id":         p.ID,
		"name":       p.Name,
		"email":      p.Email,
		"answers":    p.Answers,
		"versions":   p.Versions,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

// respondDomainError maps domain errors onto HTTP status codes
func respondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
