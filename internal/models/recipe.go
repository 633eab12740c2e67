package models

// Ingredient is a single line of a recipe's ingredient list
type Ingredient struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quantity int    `json:"quantity"`
}

// Recipe represents a recipe held in the catalog.
// Ingredients and ImageURL are optional: a nil value means the field was never supplied.
type Recipe struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
	Description string       `json:"description"`
	ImageURL    *string      `json:"imageUrl"`
}

// RecipeFields holds the caller-supplied part of a recipe, used for create and replace
type RecipeFields struct {
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
	Description string       `json:"description"`
	ImageURL    *string      `json:"imageUrl"`
}

// Apply overwrites every caller-owned field of r with the values in f. The ID is left untouched.
func (f RecipeFields) Apply(r *Recipe) {
	r.Title = f.Title
	r.Ingredients = cloneIngredients(f.Ingredients)
	r.Description = f.Description
	r.ImageURL = cloneString(f.ImageURL)
}

// Clone returns a deep copy of r so callers never share slices or pointers with the owner.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = cloneIngredients(r.Ingredients)
	out.ImageURL = cloneString(r.ImageURL)
	return out
}

// HasIngredientMatching reports whether any ingredient name satisfies match.
// A recipe without an ingredient list never matches.
func (r Recipe) HasIngredientMatching(match func(name string) bool) bool {
	for _, ing := range r.Ingredients {
		if match(ing.Name) {
			return true
		}
	}
	return false
}

func cloneIngredients(in []Ingredient) []Ingredient {
	if in == nil {
		return nil
	}
	out := make([]Ingredient, len(in))
	copy(out, in)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
