package filter

import (
	"testing"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
)

func mealWithPrice(name, price string) model.Meal {
	return model.Meal{ID: "m-" + name, Name: name, Price: price, DayOfWeek: "Monday"}
}

// =========================================================================
// PRICE BUCKET BOUNDARIES
// =========================================================================

func TestPriceBucketBoundaries(t *testing.T) {
	tests := []struct {
		price  string
		bucket string
		want   bool
	}{
		// under-8: price < 8
		{"7.99", BucketUnder8, true},
		{"8.00", BucketUnder8, false},
		// 8-12: 8 <= price <= 12 (both ends inclusive)
		{"8.00", Bucket8To12, true},
		{"12.00", Bucket8To12, true},
		{"7.99", Bucket8To12, false},
		{"12.01", Bucket8To12, false},
		// 12-16: 12 < price <= 16 — exactly 12 belongs to the lower bucket
		{"12.00", Bucket12To16, false},
		{"12.01", Bucket12To16, true},
		{"16.00", Bucket12To16, true},
		{"16.01", Bucket12To16, false},
		// over-16: price > 16
		{"16.00", BucketOver16, false},
		{"16.01", BucketOver16, true},
	}

	for _, tt := range tests {
		t.Run(tt.price+"/"+tt.bucket, func(t *testing.T) {
			m := mealWithPrice("test", tt.price)
			got := Matches(m, Spec{PriceBuckets: []string{tt.bucket}})
			if got != tt.want {
				t.Errorf("price %s in bucket %s = %v, want %v", tt.price, tt.bucket, got, tt.want)
			}
		})
	}
}

func TestPriceBuckets_OrAcrossSelection(t *testing.T) {
	meals := []model.Meal{
		mealWithPrice("cheap", "5.00"),
		mealWithPrice("mid", "10.00"),
		mealWithPrice("fancy", "19.50"),
	}

	got := Apply(meals, Spec{PriceBuckets: []string{BucketUnder8, BucketOver16}})
	if len(got) != 2 {
		t.Fatalf("Apply() returned %d meals, want 2", len(got))
	}
	if got[0].Name != "cheap" || got[1].Name != "fancy" {
		t.Errorf("Apply() = [%s, %s], want [cheap, fancy]", got[0].Name, got[1].Name)
	}
}

func TestPriceBuckets_UnknownBucketMatchesNothing(t *testing.T) {
	meals := []model.Meal{mealWithPrice("a", "9.99")}

	got := Apply(meals, Spec{PriceBuckets: []string{"luxury"}})
	if len(got) != 0 {
		t.Errorf("unknown bucket matched %d meals, want 0", len(got))
	}

	// An unknown bucket alongside a matching one must not break the OR.
	got = Apply(meals, Spec{PriceBuckets: []string{"luxury", Bucket8To12}})
	if len(got) != 1 {
		t.Errorf("unknown+valid buckets matched %d meals, want 1", len(got))
	}
}

// =========================================================================
// SEARCH
// =========================================================================

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	meals := []model.Meal{
		{ID: "1", Name: "Fish & Chips", Description: "Crispy beer-battered cod", Price: "9.99"},
		{ID: "2", Name: "Garden Salad", Description: "Mixed greens", Price: "8.99"},
	}

	tests := []struct {
		search string
		want   int
	}{
		{"fish", 1},    // matches name, case-insensitive
		{"FISH", 1},    // upper-case needle
		{"cod", 1},     // matches description
		{"greens", 1},  // description of the other meal
		{"a", 2},       // substring in both
		{"burrito", 0}, // no match
		{"", 2},        // empty search passes everything
	}

	for _, tt := range tests {
		t.Run("search="+tt.search, func(t *testing.T) {
			got := Apply(meals, Spec{Search: tt.search})
			if len(got) != tt.want {
				t.Errorf("Apply(search=%q) returned %d meals, want %d", tt.search, len(got), tt.want)
			}
		})
	}
}

// =========================================================================
// DIETARY TAGS
// =========================================================================

func TestDietaryTags_OrSemantics(t *testing.T) {
	meals := []model.Meal{
		{ID: "1", Name: "Buddha Bowl", Price: "10.49", IsVegan: true, IsGlutenFree: true},
		{ID: "2", Name: "Korean BBQ", Price: "12.49", IsSpicy: true},
		{ID: "3", Name: "Burger", Price: "12.99"},
	}

	got := Apply(meals, Spec{DietaryTags: []string{"vegan", "spicy"}})
	if len(got) != 2 {
		t.Fatalf("Apply() returned %d meals, want 2", len(got))
	}

	got = Apply(meals, Spec{DietaryTags: []string{"keto"}})
	if len(got) != 0 {
		t.Errorf("Apply(keto) returned %d meals, want 0", len(got))
	}
}

func TestDietaryTags_UnknownTagMatchesNothing(t *testing.T) {
	meals := []model.Meal{
		{ID: "1", Name: "Buddha Bowl", Price: "10.49", IsVegan: true},
	}

	if got := Apply(meals, Spec{DietaryTags: []string{"paleo"}}); len(got) != 0 {
		t.Errorf("unknown tag matched %d meals, want 0", len(got))
	}
}

func TestDietaryTags_AllEightFlags(t *testing.T) {
	flags := map[string]model.Meal{
		"vegetarian":  {IsVegetarian: true},
		"vegan":       {IsVegan: true},
		"gluten-free": {IsGlutenFree: true},
		"dairy-free":  {IsDairyFree: true},
		"keto":        {IsKeto: true},
		"low-sodium":  {IsLowSodium: true},
		"pescatarian": {IsPescatarian: true},
		"spicy":       {IsSpicy: true},
	}

	for tag, meal := range flags {
		t.Run(tag, func(t *testing.T) {
			meal.Price = "9.99"
			if !Matches(meal, Spec{DietaryTags: []string{tag}}) {
				t.Errorf("tag %q did not match its own flag", tag)
			}
		})
	}
}

// =========================================================================
// COMBINATION AND IDENTITY
// =========================================================================

func TestCriteriaAreConjunctive(t *testing.T) {
	meals := []model.Meal{
		{ID: "1", Name: "Sushi Combo", Description: "Fresh salmon rolls", Price: "15.99", IsPescatarian: true},
		{ID: "2", Name: "Sushi Burrito", Description: "Big roll", Price: "7.50", IsPescatarian: true},
		{ID: "3", Name: "Sushi Platter", Description: "Assorted", Price: "15.49"},
	}

	// All three say "sushi"; only the first is both pescatarian AND 12-16.
	got := Apply(meals, Spec{
		Search:       "sushi",
		PriceBuckets: []string{Bucket12To16},
		DietaryTags:  []string{"pescatarian"},
	})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("conjunctive filter = %v, want exactly meal 1", got)
	}
}

func TestIdentityFilter(t *testing.T) {
	meals := []model.Meal{
		mealWithPrice("a", "5.00"),
		mealWithPrice("b", "10.00"),
		mealWithPrice("c", "20.00"),
	}

	got := Apply(meals, Spec{})
	if len(got) != len(meals) {
		t.Fatalf("identity filter returned %d meals, want %d", len(got), len(meals))
	}
	for i := range meals {
		if got[i] != meals[i] {
			t.Errorf("meal %d changed through the identity filter", i)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	meals := []model.Meal{
		mealWithPrice("a", "5.00"),
		mealWithPrice("b", "20.00"),
	}
	before := make([]model.Meal, len(meals))
	copy(before, meals)

	Apply(meals, Spec{PriceBuckets: []string{BucketUnder8}})

	for i := range meals {
		if meals[i] != before[i] {
			t.Errorf("input meal %d was mutated", i)
		}
	}
}
