package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// Version is reported by the health endpoint
const Version = "v1.0.0"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Recipe catalog API is running",
		"version": Version,
	})
}

// RegisterRoutes registers all API routes. tokenValidator and creationLimiter are optional.
func RegisterRoutes(router gin.IRouter, recipeService service.IRecipeService, tokenValidator middleware.TokenValidator, creationLimiter *middleware.RateLimiter) {
	router.GET("/health", HealthCheck)

	recipeHandler := NewRecipeHandler(recipeService, tokenValidator, creationLimiter)
	recipeHandler.RegisterRoutes(router)

	if creationLimiter != nil {
		RegisterRateLimitRoutes(router, creationLimiter, tokenValidator)
	}
}

// RegisterRateLimitRoutes exposes the caller's remaining recipe-creation budget.
// The route sits behind the same auth as recipe creation so both see the same client key.
func RegisterRateLimitRoutes(router gin.IRouter, creationLimiter *middleware.RateLimiter, tokenValidator middleware.TokenValidator) {
	var handlers []gin.HandlerFunc
	if tokenValidator != nil {
		handlers = append(handlers, middleware.AuthMiddleware(tokenValidator))
	}
	handlers = append(handlers, func(c *gin.Context) {
		client := middleware.ClientKey(c)
		remaining, resetTime, err := creationLimiter.GetRemainingRequests(c.Request.Context(), client)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to check rate limit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"limit":      creationLimiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     creationLimiter.Window().String(),
		})
	})
	router.GET("/rate-limits/recipe-creation", handlers...)
}
