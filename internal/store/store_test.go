package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func titled(title string) models.RecipeFields {
	return models.RecipeFields{Title: title, Description: title + " description"}
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestCreateThenList(t *testing.T) {
	s := New()

	created, err := s.Create(models.RecipeFields{
		Title:       "T",
		Ingredients: []models.Ingredient{{Name: "Egg", Unit: "pcs", Quantity: 2}},
		Description: "D",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	all := s.List()
	require.Len(t, all, 1)
	got := all[0]
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, []models.Ingredient{{Name: "Egg", Unit: "pcs", Quantity: 2}}, got.Ingredients)
	assert.Equal(t, "D", got.Description)
	assert.Nil(t, got.ImageURL)
}

func TestCreate_IDsIncreaseAndAreNeverReused(t *testing.T) {
	s := New()

	first, err := s.Create(titled("a"))
	require.NoError(t, err)
	second, err := s.Create(titled("b"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	_, err = s.Delete(second.ID)
	require.NoError(t, err)

	third, err := s.Create(titled("c"))
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestCreate_CollisionIsReportedWithoutMutation(t *testing.T) {
	s := New()
	existing, err := s.Create(titled("original"))
	require.NoError(t, err)

	// Rewind the counter so the next id collides with the stored recipe.
	s.nextID.Store(0)

	_, err = s.Create(titled("intruder"))
	assert.ErrorIs(t, err, ErrInternal)

	got, err := s.Get(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
	assert.Equal(t, 1, s.Len())
}

func TestCreate_Concurrent(t *testing.T) {
	const n = 200
	s := New()

	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.Create(titled("concurrent"))
			assert.NoError(t, err)
			ids <- r.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		assert.Positive(t, id)
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, s.Len())
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		wantErr error
		wantLen int
	}{
		{name: "success | existing recipe", id: 1, wantLen: 1},
		{name: "error | missing recipe", id: 42, wantErr: ErrNotFound, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			_, _ = s.Create(titled("Pancakes"))
			_, _ = s.Create(titled("French Toast"))

			removed, err := s.Delete(tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, removed.ID)
				assert.Equal(t, "Pancakes", removed.Title)
			}
			assert.Len(t, s.List(), tt.wantLen)
		})
	}
}

func TestDelete_Twice(t *testing.T) {
	s := New()
	r, err := s.Create(titled("Pancakes"))
	require.NoError(t, err)

	_, err = s.Delete(r.ID)
	require.NoError(t, err)
	assert.Empty(t, s.List())

	_, err = s.Delete(r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_ConcurrentSameID(t *testing.T) {
	const n = 50
	s := New()
	r, err := s.Create(titled("contested"))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		notFound  int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Delete(r.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else {
				assert.ErrorIs(t, err, ErrNotFound)
				notFound++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, notFound)
}

func TestFilterByTitle(t *testing.T) {
	tests := []struct {
		name    string
		substr  *string
		want    []string
		wantErr error
	}{
		{name: "error | absent substring", substr: nil, wantErr: ErrInvalidArgument},
		{name: "success | empty matches all", substr: strPtr(""), want: []string{"Pancakes", "French Toast"}},
		{name: "success | partial match", substr: strPtr("anc"), want: []string{"Pancakes"}},
		{name: "success | case sensitive", substr: strPtr("pancakes"), want: []string{}},
		{name: "success | no match", substr: strPtr("xyz"), want: []string{}},
	}

	s := New()
	_, _ = s.Create(titled("Pancakes"))
	_, _ = s.Create(titled("French Toast"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FilterByTitle(tt.substr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestFilterByIngredient(t *testing.T) {
	s := New()
	_, _ = s.Create(models.RecipeFields{
		Title:       "Cookies",
		Ingredients: []models.Ingredient{{Name: "Flour", Unit: "g", Quantity: 250}, {Name: "Brown Sugar", Unit: "g", Quantity: 100}},
	})
	_, _ = s.Create(models.RecipeFields{Title: "Water"})
	_, _ = s.Create(models.RecipeFields{
		Title:       "Omelette",
		Ingredients: []models.Ingredient{{Name: "Egg", Unit: "pcs", Quantity: 3}},
	})

	tests := []struct {
		name    string
		substr  *string
		want    []string
		wantErr error
	}{
		{name: "error | absent substring", substr: nil, wantErr: ErrInvalidArgument},
		{name: "success | substring of ingredient name", substr: strPtr("Sugar"), want: []string{"Cookies"}},
		{name: "success | empty skips recipes without ingredients", substr: strPtr(""), want: []string{"Cookies", "Omelette"}},
		{name: "success | no match", substr: strPtr("Milk"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FilterByIngredient(tt.substr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestReplace(t *testing.T) {
	s := New()
	url := "http://example.com/old.jpg"
	orig, err := s.Create(models.RecipeFields{
		Title:       "Old",
		Ingredients: []models.Ingredient{{Name: "Salt"}},
		Description: "old",
		ImageURL:    &url,
	})
	require.NoError(t, err)

	updated, err := s.Replace(orig.ID, models.RecipeFields{
		Title:       "New",
		Ingredients: []models.Ingredient{{Name: "Pepper", Unit: "pinch", Quantity: 1}},
		Description: "new",
	})
	require.NoError(t, err)

	assert.Equal(t, orig.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, []models.Ingredient{{Name: "Pepper", Unit: "pinch", Quantity: 1}}, updated.Ingredients)
	assert.Nil(t, updated.ImageURL)

	stored, err := s.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
	assert.Equal(t, 1, s.Len())
}

func TestReplace_MissingNeverCreates(t *testing.T) {
	s := New()
	_, _ = s.Create(titled("Pancakes"))

	_, err := s.Replace(99, titled("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.List(), 1)

	_, err = s.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PreservesID(t *testing.T) {
	s := New()
	r, err := s.Create(titled("Pancakes"))
	require.NoError(t, err)

	got, err := s.Update(r.ID, func(rec *models.Recipe) {
		rec.ID = 1000
		rec.Title = "Waffles"
	})
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "Waffles", got.Title)

	_, err = s.Get(1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_ReturnsCopies(t *testing.T) {
	s := New()
	_, err := s.Create(models.RecipeFields{Title: "T", Ingredients: []models.Ingredient{{Name: "Egg"}}})
	require.NoError(t, err)

	first := s.List()
	first[0].Title = "mutated"
	first[0].Ingredients[0].Name = "mutated"

	second := s.List()
	assert.Equal(t, "T", second[0].Title)
	assert.Equal(t, "Egg", second[0].Ingredients[0].Name)
}

func TestList_Idempotent(t *testing.T) {
	s := New()
	_, _ = s.Create(titled("Pancakes"))
	_, _ = s.Create(titled("French Toast"))

	assert.ElementsMatch(t, s.List(), s.List())
}

func TestList_EmptyStore(t *testing.T) {
	s := New()
	got := s.List()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestConcurrentMixedOperations(t *testing.T) {
	s := New()
	for i := 0; i < 20; i++ {
		_, _ = s.Create(titled("seed"))
	}

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		id := i
		wg.Add(4)
		go func() { defer wg.Done(); _, _ = s.Create(titled("extra")) }()
		go func() { defer wg.Done(); _, _ = s.Replace(id, titled("replaced")) }()
		go func() { defer wg.Done(); _ = s.List() }()
		go func() { defer wg.Done(); _, _ = s.FilterByTitle(strPtr("e")) }()
	}
	wg.Wait()

	assert.Equal(t, 40, s.Len())
	for _, r := range s.List() {
		assert.Contains(t, []string{"seed", "extra", "replaced"}, r.Title)
	}
}
