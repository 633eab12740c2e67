// Package store holds the in-memory recipe catalog. Recipes are keyed by an
// integer id issued from an atomic counter; the map is guarded by a RWMutex so
// callers never need to synchronize themselves.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pageza/recipe-catalog/backend/internal/models"
)

var (
	// ErrNotFound is returned when no recipe exists for the requested id
	ErrNotFound = errors.New("recipe not found")
	// ErrInvalidArgument is returned when a required argument is missing
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal is returned when a freshly issued id is already present in the map
	ErrInternal = errors.New("internal store error")
)

// RecipeStore is a concurrency-safe in-memory collection of recipes.
type RecipeStore struct {
	mu      sync.RWMutex
	recipes map[int]*models.Recipe
	nextID  atomic.Int64
}

// New creates an empty RecipeStore. The first issued id is 1.
func New() *RecipeStore {
	return &RecipeStore{
		recipes: make(map[int]*models.Recipe),
	}
}

// Create stores a new recipe built from fields and returns it with its assigned id.
// The counter is advanced even when insertion fails; ids are never handed out twice.
func (s *RecipeStore) Create(fields models.RecipeFields) (models.Recipe, error) {
	id := int(s.nextID.Add(1))

	recipe := &models.Recipe{ID: id}
	fields.Apply(recipe)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.recipes[id]; exists {
		return models.Recipe{}, fmt.Errorf("%w: id %d already present", ErrInternal, id)
	}
	s.recipes[id] = recipe
	return recipe.Clone(), nil
}

// List returns copies of all stored recipes ordered by id.
func (s *RecipeStore) List() []models.Recipe {
	return s.collect(func(models.Recipe) bool { return true })
}

// Get returns the recipe with the given id.
func (s *RecipeStore) Get(id int) (models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return models.Recipe{}, fmt.Errorf("get recipe %d: %w", id, ErrNotFound)
	}
	return r.Clone(), nil
}

// Delete removes the recipe with the given id and returns it.
func (s *RecipeStore) Delete(id int) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	if !ok {
		return models.Recipe{}, fmt.Errorf("delete recipe %d: %w", id, ErrNotFound)
	}
	delete(s.recipes, id)
	return *r, nil
}

// FilterByTitle returns recipes whose title contains substr (case-sensitive).
// A nil substr is rejected; an empty one matches every recipe.
func (s *RecipeStore) FilterByTitle(substr *string) ([]models.Recipe, error) {
	if substr == nil {
		return nil, fmt.Errorf("filter by title: substring is required: %w", ErrInvalidArgument)
	}
	needle := *substr
	return s.collect(func(r models.Recipe) bool {
		return strings.Contains(r.Title, needle)
	}), nil
}

// FilterByIngredient returns recipes with at least one ingredient whose name contains substr.
// Recipes without an ingredient list are never included.
func (s *RecipeStore) FilterByIngredient(substr *string) ([]models.Recipe, error) {
	if substr == nil {
		return nil, fmt.Errorf("filter by ingredient: substring is required: %w", ErrInvalidArgument)
	}
	needle := *substr
	return s.collect(func(r models.Recipe) bool {
		return r.HasIngredientMatching(func(name string) bool {
			return strings.Contains(name, needle)
		})
	}), nil
}

// Replace overwrites all fields of an existing recipe except its id.
// It never creates a recipe.
func (s *RecipeStore) Replace(id int, fields models.RecipeFields) (models.Recipe, error) {
	return s.Update(id, fields.Apply)
}

// Update applies fn to the stored recipe under the write lock and returns the result.
// fn must not change the recipe id.
func (s *RecipeStore) Update(id int, fn func(*models.Recipe)) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[id]
	if !ok {
		return models.Recipe{}, fmt.Errorf("update recipe %d: %w", id, ErrNotFound)
	}
	fn(r)
	r.ID = id
	return r.Clone(), nil
}

// Len returns the number of stored recipes.
func (s *RecipeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

func (s *RecipeStore) collect(keep func(models.Recipe) bool) []models.Recipe {
	s.mu.RLock()
	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if keep(*r) {
			out = append(out, r.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
