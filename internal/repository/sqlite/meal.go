package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/apperror"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/repository"
)

// Compile-time check that *DB implements the meal store contract.
var _ repository.MealRepository = (*DB)(nil)

const mealColumns = `id, name, description, price, calories, protein, carbs, fat,
	ingredients, allergens, image_url, rating, day_of_week,
	is_vegetarian, is_vegan, is_gluten_free, is_dairy_free,
	is_keto, is_low_sodium, is_pescatarian, is_spicy`

// scanMeal reads one row into a Meal. The column order must match
// mealColumns.
func scanMeal(row interface{ Scan(...any) error }) (*model.Meal, error) {
	var m model.Meal
	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.Calories,
		&m.Protein, &m.Carbs, &m.Fat,
		&m.Ingredients, &m.Allergens, &m.ImageURL, &m.Rating, &m.DayOfWeek,
		&m.IsVegetarian, &m.IsVegan, &m.IsGlutenFree, &m.IsDairyFree,
		&m.IsKeto, &m.IsLowSodium, &m.IsPescatarian, &m.IsSpicy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// mealArgs flattens a Meal into the insert/update argument order
// (everything after the id in mealColumns).
func mealArgs(m *model.Meal) []any {
	return []any{
		m.Name, m.Description, m.Price, m.Calories,
		m.Protein, m.Carbs, m.Fat,
		m.Ingredients, m.Allergens, m.ImageURL, m.Rating, m.DayOfWeek,
		m.IsVegetarian, m.IsVegan, m.IsGlutenFree, m.IsDairyFree,
		m.IsKeto, m.IsLowSodium, m.IsPescatarian, m.IsSpicy,
	}
}

// CreateMeal inserts a new meal, assigning a fresh xid. The caller's struct
// is updated in place with the generated ID.
//
// xid values sort by creation time, so "ORDER BY id" on the read paths
// returns meals in insertion order without a separate timestamp column.
func (db *DB) CreateMeal(ctx context.Context, meal *model.Meal) error {
	meal.ID = xid.New().String()

	args := append([]any{meal.ID}, mealArgs(meal)...)
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO meals (`+mealColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating meal: %w", err)
	}

	return nil
}

// GetMealByID returns the meal with the given id, or ErrNotFound.
func (db *DB) GetMealByID(ctx context.Context, id string) (*model.Meal, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE id = ?`, id)

	meal, err := scanMeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("meal", id)
		}
		return nil, fmt.Errorf("sqlite: getting meal %s: %w", id, err)
	}
	return meal, nil
}

// GetMealsByDay returns every meal offered on the given day, in insertion
// order. An empty result is not an error — the day validation happens
// upstream, a valid day can simply have no meals.
func (db *DB) GetMealsByDay(ctx context.Context, day string) ([]model.Meal, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE day_of_week = ? ORDER BY id`, day)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing meals for %s: %w", day, err)
	}
	defer rows.Close()

	return collectMeals(rows)
}

// GetAllMeals returns a snapshot of every meal.
func (db *DB) GetAllMeals(ctx context.Context) ([]model.Meal, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+mealColumns+` FROM meals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing meals: %w", err)
	}
	defer rows.Close()

	return collectMeals(rows)
}

func collectMeals(rows *sql.Rows) ([]model.Meal, error) {
	meals := make([]model.Meal, 0, 16)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning meal row: %w", err)
		}
		meals = append(meals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating meals: %w", err)
	}
	return meals, nil
}

// UpdateMeal merges the patch into the stored record and returns the result.
//
// The read-merge-write runs inside one transaction so a concurrent update
// can't interleave between the read and the write — the merge is atomic.
// Only non-nil patch fields change; the id never does, even if the caller
// somehow smuggled one into the patch (MealPatch has no ID field).
func (db *DB) UpdateMeal(ctx context.Context, id string, patch model.MealPatch) (*model.Meal, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE id = ?`, id)
	existing, err := scanMeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("meal", id)
		}
		return nil, fmt.Errorf("sqlite: getting meal %s for update: %w", id, err)
	}

	merged := existing.Apply(patch)

	args := append(mealArgs(&merged), id)
	_, err = tx.ExecContext(ctx,
		`UPDATE meals SET
			name = ?, description = ?, price = ?, calories = ?,
			protein = ?, carbs = ?, fat = ?,
			ingredients = ?, allergens = ?, image_url = ?, rating = ?, day_of_week = ?,
			is_vegetarian = ?, is_vegan = ?, is_gluten_free = ?, is_dairy_free = ?,
			is_keto = ?, is_low_sodium = ?, is_pescatarian = ?, is_spicy = ?
		 WHERE id = ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating meal %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing update: %w", err)
	}

	return &merged, nil
}

// DeleteMeal removes the record permanently. A second delete of the same id
// reports ErrNotFound — the boundary translates that, it is not a store
// failure.
func (db *DB) DeleteMeal(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting meal %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("meal", id)
	}

	return nil
}

// CountMeals reports how many meals exist. Used by the seeder to decide
// whether the menu needs populating.
func (db *DB) CountMeals(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM meals`).Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: counting meals: %w", err)
	}
	return count, nil
}
