package service

import (
	"context"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id int) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, fields models.RecipeFields) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id int) (*models.Recipe, error)
	FilterByTitle(ctx context.Context, title *string) ([]models.Recipe, error)
	FilterByIngredient(ctx context.Context, ingredient *string) ([]models.Recipe, error)
	ReplaceRecipe(ctx context.Context, id int, fields models.RecipeFields) (*models.Recipe, error)
	AttachImage(ctx context.Context, id int, data []byte, contentType string) (*models.Recipe, error)
}

// ITokenService defines the interface for issuing and validating API tokens
type ITokenService interface {
	GenerateToken(subject string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ImageUploader stores recipe images and returns their public URL
type ImageUploader interface {
	Upload(ctx context.Context, recipeID int, data []byte, contentType string) (string, error)
}
