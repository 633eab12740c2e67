package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// Dependencies are the collaborators the routes are built from.
// TokenValidator and CreationLimiter are optional.
type Dependencies struct {
	RecipeService   service.IRecipeService
	TokenValidator  middleware.TokenValidator
	CreationLimiter *middleware.RateLimiter
	CORSOrigins     []string
}

// SetupRouter configures the application routes. Panics propagate out of the
// engine so middleware.ErrorHandler can answer them with a JSON 500.
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(deps.CORSOrigins))

	api.RegisterRoutes(router, deps.RecipeService, deps.TokenValidator, deps.CreationLimiter)

	return router
}
