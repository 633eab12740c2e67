package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/store"
)

var (
	// ErrImagesDisabled is returned by AttachImage when no uploader is configured
	ErrImagesDisabled = errors.New("image uploads are not configured")
	// ErrUploadFailed wraps errors from the image uploader
	ErrUploadFailed = errors.New("image upload failed")
)

// RecipeService handles recipe operations on top of the in-memory store
type RecipeService struct {
	store    *store.RecipeStore
	uploader ImageUploader
}

// NewRecipeService creates a new RecipeService instance. uploader may be nil,
// in which case AttachImage reports ErrImagesDisabled.
func NewRecipeService(st *store.RecipeStore, uploader ImageUploader) *RecipeService {
	return &RecipeService{
		store:    st,
		uploader: uploader,
	}
}

// ListRecipes returns every recipe in the catalog
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.store.List(), nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id int) (*models.Recipe, error) {
	recipe, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe adds a recipe and returns it with its assigned ID
func (s *RecipeService) CreateRecipe(ctx context.Context, fields models.RecipeFields) (*models.Recipe, error) {
	recipe, err := s.store.Create(fields)
	if err != nil {
		log.Printf("[RecipeService] Failed to create recipe %q: %v", fields.Title, err)
		return nil, err
	}
	log.Printf("[RecipeService] Created recipe %d (%q)", recipe.ID, recipe.Title)
	return &recipe, nil
}

// DeleteRecipe removes a recipe and returns the removed entity
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int) (*models.Recipe, error) {
	recipe, err := s.store.Delete(id)
	if err != nil {
		return nil, err
	}
	log.Printf("[RecipeService] Deleted recipe %d", id)
	return &recipe, nil
}

// FilterByTitle returns recipes whose title contains the given substring.
// A nil substring is rejected with store.ErrInvalidArgument.
func (s *RecipeService) FilterByTitle(ctx context.Context, title *string) ([]models.Recipe, error) {
	return s.store.FilterByTitle(title)
}

// FilterByIngredient returns recipes with an ingredient whose name contains the given substring
func (s *RecipeService) FilterByIngredient(ctx context.Context, ingredient *string) ([]models.Recipe, error) {
	return s.store.FilterByIngredient(ingredient)
}

// ReplaceRecipe overwrites every field of an existing recipe except its ID
func (s *RecipeService) ReplaceRecipe(ctx context.Context, id int, fields models.RecipeFields) (*models.Recipe, error) {
	recipe, err := s.store.Replace(id, fields)
	if err != nil {
		return nil, err
	}
	log.Printf("[RecipeService] Replaced recipe %d", id)
	return &recipe, nil
}

// AttachImage uploads image data for an existing recipe and points its image URL at the upload
func (s *RecipeService) AttachImage(ctx context.Context, id int, data []byte, contentType string) (*models.Recipe, error) {
	if s.uploader == nil {
		return nil, ErrImagesDisabled
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image is empty: %w", store.ErrInvalidArgument)
	}

	// Avoid orphaned uploads for recipes that do not exist
	if _, err := s.store.Get(id); err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, id, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: recipe %d: %v", ErrUploadFailed, id, err)
	}

	recipe, err := s.store.Update(id, func(r *models.Recipe) {
		r.ImageURL = &url
	})
	if err != nil {
		// Recipe was deleted while the upload was in flight
		log.Printf("[RecipeService] Recipe %d vanished during image upload, object %s is orphaned", id, url)
		return nil, err
	}

	log.Printf("[RecipeService] Attached image %s to recipe %d", url, id)
	return &recipe, nil
}
