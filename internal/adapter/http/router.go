package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenMiddleware rejects requests whose Authorization header does not
// carry the configured bearer token.
func TokenMiddleware(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token != validToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}

// SetupRouter configures and returns a gin engine with all API routes
func SetupRouter(h *Handler, apiToken string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	apiV1.Use(TokenMiddleware(apiToken))
	{
		profiles := apiV1.Group("/profiles")
		{
			profiles.POST("", h.CreateProfile)
			profiles.GET("/:id", h.GetProfile)
			profiles.DELETE("/:id", h.DeleteProfile)
			profiles.POST("/:id/answers", h.AddAnswer)
			profiles.POST("/:id/versions", h.CreateVersion)
			profiles.POST("/:id/goals", h.CreateGoal)
			profiles.GET("/:id/goals", h.ListGoals)
		}

		goals := apiV1.Group("/goals")
		{
			goals.GET("/:id", h.GetGoal)
			goals.PATCH("/:id", h.UpdateGoal)
			goals.DELETE("/:id", h.DeleteGoal)
			goals.GET("/:id/required-saving", h.RequiredSaving)
			goals.POST("/:id/probability", h.RefreshProbability)
		}

		apiV1.GET("/categories", h.ListCategories)

		parameters := apiV1.Group("/parameters")
		{
			parameters.GET("/:path", h.GetParameter)
			parameters.PUT("/:path", h.SetParameter)
			parameters.DELETE("/:path", h.RemoveParameter)
			parameters.GET("/:path/history", h.ParameterHistory)
		}
	}

	return r
}
