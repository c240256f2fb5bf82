// Package filter implements the meal query engine: given a candidate set of
// meals and a filter specification, it produces the matching subset.
//
// The engine is a pure function — no mutation, no I/O, deterministic for a
// given input pair. The same rules the menu UI applies client-side are
// exposed server-side through query parameters on the list endpoints.
package filter

import (
	"strings"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
)

// Price bucket identifiers. Boundary semantics are exact and must not
// drift: a price of exactly 12 belongs to "8-12", never "12-16" — each
// bucket is inclusive at its own ceiling and exclusive at the next floor.
const (
	BucketUnder8 = "under-8" // price < 8
	Bucket8To12  = "8-12"    // 8 <= price <= 12
	Bucket12To16 = "12-16"   // 12 < price <= 16
	BucketOver16 = "over-16" // price > 16
)

// Spec describes one filter pass. Empty criteria pass everything: a zero
// Spec is the identity filter.
type Spec struct {
	Search       string   // case-insensitive substring over name/description
	PriceBuckets []string // OR across buckets
	DietaryTags  []string // OR across tags
}

// dietary tag id → flag accessor. Unknown tags simply have no entry and
// therefore match nothing.
var tagFlags = map[string]func(model.Meal) bool{
	"vegetarian":  func(m model.Meal) bool { return m.IsVegetarian },
	"vegan":       func(m model.Meal) bool { return m.IsVegan },
	"gluten-free": func(m model.Meal) bool { return m.IsGlutenFree },
	"dairy-free":  func(m model.Meal) bool { return m.IsDairyFree },
	"keto":        func(m model.Meal) bool { return m.IsKeto },
	"low-sodium":  func(m model.Meal) bool { return m.IsLowSodium },
	"pescatarian": func(m model.Meal) bool { return m.IsPescatarian },
	"spicy":       func(m model.Meal) bool { return m.IsSpicy },
}

// Apply returns the meals that pass every active criterion of the spec.
// Criteria combine conjunctively; within the bucket and tag sets the match
// is a logical OR. The input slice is never modified; the result is a new
// slice preserving input order.
func Apply(meals []model.Meal, spec Spec) []model.Meal {
	out := make([]model.Meal, 0, len(meals))
	for _, m := range meals {
		if Matches(m, spec) {
			out = append(out, m)
		}
	}
	return out
}

// Matches reports whether a single meal passes the spec.
func Matches(m model.Meal, spec Spec) bool {
	return matchesSearch(m, spec.Search) &&
		matchesPrice(m, spec.PriceBuckets) &&
		matchesTags(m, spec.DietaryTags)
}

func matchesSearch(m model.Meal, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(m.Name), needle) ||
		strings.Contains(strings.ToLower(m.Description), needle)
}

func matchesPrice(m model.Meal, buckets []string) bool {
	if len(buckets) == 0 {
		return true
	}
	price := m.PriceValue()
	for _, b := range buckets {
		if priceInBucket(price, b) {
			return true
		}
	}
	return false
}

// priceInBucket returns false for unrecognized bucket ids — they contribute
// a false to the OR, never an error.
func priceInBucket(price float64, bucket string) bool {
	switch bucket {
	case BucketUnder8:
		return price < 8
	case Bucket8To12:
		return price >= 8 && price <= 12
	case Bucket12To16:
		return price > 12 && price <= 16
	case BucketOver16:
		return price > 16
	default:
		return false
	}
}

func matchesTags(m model.Meal, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if flag, ok := tagFlags[tag]; ok && flag(m) {
			return true
		}
	}
	return false
}
