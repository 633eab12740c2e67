package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/store"
)

type RecipeHandler struct {
	recipeService   service.IRecipeService
	tokenValidator  middleware.TokenValidator
	creationLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a handler for the recipe routes. A nil tokenValidator leaves
// mutating routes open; a nil creationLimiter disables the creation rate limit.
func NewRecipeHandler(recipeService service.IRecipeService, tokenValidator middleware.TokenValidator, creationLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		tokenValidator:  tokenValidator,
		creationLimiter: creationLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	var protect []gin.HandlerFunc
	if h.tokenValidator != nil {
		protect = append(protect, middleware.AuthMiddleware(h.tokenValidator))
	}
	create := protect
	if h.creationLimiter != nil {
		create = chain(protect, h.creationLimiter.RateLimitMiddleware())
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/filteredRecipesByTitle", h.FilterByTitle)
		recipes.GET("/filteredRecipesByIngredient", h.FilterByIngredient)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", chain(create, h.CreateRecipe)...)
		recipes.DELETE("/:id", chain(protect, h.DeleteRecipe)...)
		recipes.PUT("/replace/:id", chain(protect, h.ReplaceRecipe)...)
		recipes.POST("/:id/image", chain(protect, h.UploadImage)...)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(recipes))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var fields models.RecipeFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/recipes/%d", recipe.ID))
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipeService.DeleteRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// FilterByTitle handles GET /recipes/filteredRecipesByTitle?title=.
// A missing title parameter is a bad request; an empty one matches every recipe.
func (h *RecipeHandler) FilterByTitle(c *gin.Context) {
	var title *string
	if v, ok := c.GetQuery("title"); ok {
		title = &v
	}
	recipes, err := h.recipeService.FilterByTitle(c.Request.Context(), title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(recipes))
}

// FilterByIngredient handles GET /recipes/filteredRecipesByIngredient?ingredient=
func (h *RecipeHandler) FilterByIngredient(c *gin.Context) {
	var ingredient *string
	if v, ok := c.GetQuery("ingredient"); ok {
		ingredient = &v
	}
	recipes, err := h.recipeService.FilterByIngredient(c.Request.Context(), ingredient)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(recipes))
}

func (h *RecipeHandler) ReplaceRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var fields models.RecipeFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.ReplaceRecipe(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UploadImage handles POST /recipes/:id/image with a multipart "image" file
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > service.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("image exceeds %d bytes", service.MaxImageSize)})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxImageSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	recipe, err := h.recipeService.AttachImage(c.Request.Context(), id, data, file.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// recipeID parses the :id path parameter, writing a 400 response when it is not an integer
func recipeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return 0, false
	}
	return id, true
}

// respondError maps service and store errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, store.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrImagesDisabled):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUploadFailed):
		log.Printf("[RecipeHandler] Image upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
	case errors.Is(err, store.ErrInternal):
		log.Printf("[RecipeHandler] Internal store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store recipe"})
	default:
		log.Printf("[RecipeHandler] Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

func nonNil(recipes []models.Recipe) []models.Recipe {
	if recipes == nil {
		return []models.Recipe{}
	}
	return recipes
}

// chain returns a fresh slice of middleware followed by handler
func chain(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, handler)
}
