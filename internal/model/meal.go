// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — plain values with json struct
// tags that control how they serialize at the API boundary.
package model

import (
	"fmt"
	"strconv"
)

// Days lists the seven recognized day-of-week names, in menu order.
// Day matching is case-sensitive and exact: "monday" is NOT a valid day.
var Days = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// ValidDay reports whether day is one of the seven recognized names.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// Meal represents one menu offering for one day of the week.
//
// Decimal fields (Price, Protein, Carbs, Fat, Rating) are stored and
// transported as strings. The API canonicalizes them on the way in
// (CanonicalPrice, CanonicalGrams, CanonicalRating) so a persisted record
// always carries a fixed number of fractional digits — "9.99", "25.0" —
// and never suffers float round-trip drift.
//
// All eight dietary flags are always present on a persisted record.
// NewMeal is the single place where absent flags default to false.
type Meal struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         string `json:"price"`    // currency, 2 fractional digits
	Calories      int    `json:"calories"` // non-negative
	Protein       string `json:"protein"`  // grams, 1 fractional digit
	Carbs         string `json:"carbs"`    // grams, 1 fractional digit
	Fat           string `json:"fat"`      // grams, 1 fractional digit
	Ingredients   string `json:"ingredients"`
	Allergens     string `json:"allergens"`
	ImageURL      string `json:"imageUrl"`
	Rating        string `json:"rating"` // 1.0–5.0, 1 fractional digit
	DayOfWeek     string `json:"dayOfWeek"`
	IsVegetarian  bool   `json:"isVegetarian"`
	IsVegan       bool   `json:"isVegan"`
	IsGlutenFree  bool   `json:"isGlutenFree"`
	IsDairyFree   bool   `json:"isDairyFree"`
	IsKeto        bool   `json:"isKeto"`
	IsLowSodium   bool   `json:"isLowSodium"`
	IsPescatarian bool   `json:"isPescatarian"`
	IsSpicy       bool   `json:"isSpicy"`
}

// InsertMeal is the input for creating a meal: every Meal field minus the ID
// (which the store assigns — never client-supplied).
//
// The dietary flags are pointers so that "not sent" is distinguishable from
// "sent as false". NewMeal resolves both to false. The validate tags are the
// explicit boundary schema — the handler rejects a payload that fails them
// before anything reaches the service or store.
type InsertMeal struct {
	Name          string `json:"name"          validate:"required"`
	Description   string `json:"description"   validate:"required"`
	Price         string `json:"price"         validate:"required"`
	Calories      *int   `json:"calories"      validate:"required"`
	Protein       string `json:"protein"       validate:"required"`
	Carbs         string `json:"carbs"         validate:"required"`
	Fat           string `json:"fat"           validate:"required"`
	Ingredients   string `json:"ingredients"   validate:"required"`
	Allergens     string `json:"allergens"     validate:"required"`
	ImageURL      string `json:"imageUrl"      validate:"required"`
	Rating        string `json:"rating"        validate:"required"`
	DayOfWeek     string `json:"dayOfWeek"     validate:"required"`
	IsVegetarian  *bool  `json:"isVegetarian"`
	IsVegan       *bool  `json:"isVegan"`
	IsGlutenFree  *bool  `json:"isGlutenFree"`
	IsDairyFree   *bool  `json:"isDairyFree"`
	IsKeto        *bool  `json:"isKeto"`
	IsLowSodium   *bool  `json:"isLowSodium"`
	IsPescatarian *bool  `json:"isPescatarian"`
	IsSpicy       *bool  `json:"isSpicy"`
}

// MealPatch is a partial update: only non-nil fields are applied to the
// existing record. The ID is never part of a patch — identity is immutable.
type MealPatch struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	Calories      *int    `json:"calories"`
	Protein       *string `json:"protein"`
	Carbs         *string `json:"carbs"`
	Fat           *string `json:"fat"`
	Ingredients   *string `json:"ingredients"`
	Allergens     *string `json:"allergens"`
	ImageURL      *string `json:"imageUrl"`
	Rating        *string `json:"rating"`
	DayOfWeek     *string `json:"dayOfWeek"`
	IsVegetarian  *bool   `json:"isVegetarian"`
	IsVegan       *bool   `json:"isVegan"`
	IsGlutenFree  *bool   `json:"isGlutenFree"`
	IsDairyFree   *bool   `json:"isDairyFree"`
	IsKeto        *bool   `json:"isKeto"`
	IsLowSodium   *bool   `json:"isLowSodium"`
	IsPescatarian *bool   `json:"isPescatarian"`
	IsSpicy       *bool   `json:"isSpicy"`
}

// NewMeal builds a full Meal record from validated input.
//
// This is the one construction path from "partial input" to "full record":
// every dietary flag absent from the input becomes false here, nowhere else.
// The ID is left empty — the repository assigns it on insert.
func NewMeal(in InsertMeal) Meal {
	calories := 0
	if in.Calories != nil {
		calories = *in.Calories
	}
	return Meal{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Calories:      calories,
		Protein:       in.Protein,
		Carbs:         in.Carbs,
		Fat:           in.Fat,
		Ingredients:   in.Ingredients,
		Allergens:     in.Allergens,
		ImageURL:      in.ImageURL,
		Rating:        in.Rating,
		DayOfWeek:     in.DayOfWeek,
		IsVegetarian:  boolValue(in.IsVegetarian),
		IsVegan:       boolValue(in.IsVegan),
		IsGlutenFree:  boolValue(in.IsGlutenFree),
		IsDairyFree:   boolValue(in.IsDairyFree),
		IsKeto:        boolValue(in.IsKeto),
		IsLowSodium:   boolValue(in.IsLowSodium),
		IsPescatarian: boolValue(in.IsPescatarian),
		IsSpicy:       boolValue(in.IsSpicy),
	}
}

// Apply merges a patch into a copy of the meal and returns it.
// The receiver is not modified; the ID always carries over unchanged.
func (m Meal) Apply(p MealPatch) Meal {
	out := m
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Calories != nil {
		out.Calories = *p.Calories
	}
	if p.Protein != nil {
		out.Protein = *p.Protein
	}
	if p.Carbs != nil {
		out.Carbs = *p.Carbs
	}
	if p.Fat != nil {
		out.Fat = *p.Fat
	}
	if p.Ingredients != nil {
		out.Ingredients = *p.Ingredients
	}
	if p.Allergens != nil {
		out.Allergens = *p.Allergens
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	if p.DayOfWeek != nil {
		out.DayOfWeek = *p.DayOfWeek
	}
	if p.IsVegetarian != nil {
		out.IsVegetarian = *p.IsVegetarian
	}
	if p.IsVegan != nil {
		out.IsVegan = *p.IsVegan
	}
	if p.IsGlutenFree != nil {
		out.IsGlutenFree = *p.IsGlutenFree
	}
	if p.IsDairyFree != nil {
		out.IsDairyFree = *p.IsDairyFree
	}
	if p.IsKeto != nil {
		out.IsKeto = *p.IsKeto
	}
	if p.IsLowSodium != nil {
		out.IsLowSodium = *p.IsLowSodium
	}
	if p.IsPescatarian != nil {
		out.IsPescatarian = *p.IsPescatarian
	}
	if p.IsSpicy != nil {
		out.IsSpicy = *p.IsSpicy
	}
	return out
}

// PriceValue parses the meal's price as a float for range comparisons.
// A persisted record always has a parseable price, so a parse failure
// (possible only on unvalidated data) reads as 0.
func (m Meal) PriceValue() float64 {
	v, err := strconv.ParseFloat(m.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// CanonicalPrice validates a decimal currency string and reformats it with
// exactly 2 fractional digits. Rejects unparseable and negative values.
func CanonicalPrice(s string) (string, error) {
	return canonicalDecimal(s, 2)
}

// CanonicalGrams validates a decimal gram amount (protein, carbs, fat) and
// reformats it with exactly 1 fractional digit. Rejects negative values.
func CanonicalGrams(s string) (string, error) {
	return canonicalDecimal(s, 1)
}

// CanonicalRating validates a rating and reformats it with 1 fractional
// digit. Valid ratings lie in [1.0, 5.0].
func CanonicalRating(s string) (string, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("not a number: %q", s)
	}
	if v < 1.0 || v > 5.0 {
		return "", fmt.Errorf("rating %s out of range [1.0, 5.0]", s)
	}
	return strconv.FormatFloat(v, 'f', 1, 64), nil
}

func canonicalDecimal(s string, places int) (string, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("not a number: %q", s)
	}
	if v < 0 {
		return "", fmt.Errorf("negative value %s", s)
	}
	return strconv.FormatFloat(v, 'f', places, 64), nil
}

func boolValue(p *bool) bool {
	return p != nil && *p
}
