// Package seed populates an empty store with the base menu so a fresh
// deployment has something to serve.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/repository"
)

// baseMenu is the ten-item daily menu. Every item is offered on all seven
// days; day variations are left to the admin endpoints.
var baseMenu = []model.Meal{
	{
		Name:          "Fish & Chips",
		Description:   "Crispy beer-battered cod with golden fries and tartar sauce",
		Price:         "9.99",
		Calories:      540,
		Protein:       "25.0",
		Carbs:         "45.0",
		Fat:           "22.0",
		Ingredients:   "Cod fillet, beer batter (flour, beer, salt), potatoes, vegetable oil, tartar sauce (mayonnaise, pickles, capers)",
		Allergens:     "Contains: Fish, Gluten, Eggs. May contain traces of soy.",
		ImageURL:      "https://images.unsplash.com/photo-1544982503-9f984c14501a?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:        "4.3",
		IsPescatarian: true,
	},
	{
		Name:         "Mediterranean Bowl",
		Description:  "Grilled chicken with quinoa, fresh vegetables, and tzatziki",
		Price:        "11.49",
		Calories:     420,
		Protein:      "28.0",
		Carbs:        "35.0",
		Fat:          "12.0",
		Ingredients:  "Grilled chicken breast, quinoa, cucumber, cherry tomatoes, red onion, kalamata olives, feta cheese, mixed greens, tzatziki sauce",
		Allergens:    "Contains: Dairy. May contain traces of nuts.",
		ImageURL:     "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:       "4.6",
		IsGlutenFree: true,
	},
	{
		Name:        "Campus Gourmet Burger",
		Description: "Angus beef patty with cheese, lettuce, tomato, and sweet potato fries",
		Price:       "12.99",
		Calories:    680,
		Protein:     "32.0",
		Carbs:       "52.0",
		Fat:         "28.0",
		Ingredients: "Angus beef patty, brioche bun, cheddar cheese, lettuce, tomato, red onion, special sauce, sweet potato fries",
		Allergens:   "Contains: Gluten, Dairy, Eggs. May contain traces of soy.",
		ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:      "4.4",
	},
	{
		Name:         "Rainbow Buddha Bowl",
		Description:  "Colorful mix of roasted vegetables, chickpeas, and tahini dressing",
		Price:        "10.49",
		Calories:     380,
		Protein:      "15.0",
		Carbs:        "48.0",
		Fat:          "14.0",
		Ingredients:  "Roasted sweet potato, chickpeas, quinoa, red cabbage, carrots, broccoli, tahini dressing, pumpkin seeds",
		Allergens:    "Contains: Sesame. May contain traces of nuts.",
		ImageURL:     "https://images.unsplash.com/photo-1512058564366-18510be2db19?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:       "4.5",
		IsVegan:      true,
		IsGlutenFree: true,
	},
	{
		Name:        "Chicken Alfredo Pasta",
		Description: "Creamy alfredo sauce with grilled chicken and fresh herbs",
		Price:       "13.49",
		Calories:    620,
		Protein:     "35.0",
		Carbs:       "58.0",
		Fat:         "24.0",
		Ingredients: "Grilled chicken breast, fettuccine pasta, cream, parmesan cheese, garlic, herbs, butter",
		Allergens:   "Contains: Gluten, Dairy. May contain traces of eggs.",
		ImageURL:    "https://images.unsplash.com/photo-1621996346565-e3dbc353d2e5?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:      "4.2",
	},
	{
		Name:          "Sushi Combo Platter",
		Description:   "Fresh salmon and tuna rolls with miso soup and edamame",
		Price:         "15.99",
		Calories:      450,
		Protein:       "22.0",
		Carbs:         "55.0",
		Fat:           "12.0",
		Ingredients:   "Sushi rice, nori, salmon, tuna, cucumber, avocado, wasabi, pickled ginger, soy sauce, miso soup, edamame",
		Allergens:     "Contains: Fish, Soy. May contain traces of shellfish.",
		ImageURL:      "https://images.unsplash.com/photo-1553621042-f6e147245754?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:        "4.7",
		IsGlutenFree:  true,
		IsPescatarian: true,
	},
	{
		Name:        "Korean BBQ Bowl",
		Description: "Marinated beef bulgogi with steamed rice and kimchi",
		Price:       "12.49",
		Calories:    520,
		Protein:     "28.0",
		Carbs:       "45.0",
		Fat:         "18.0",
		Ingredients: "Marinated beef bulgogi, steamed rice, kimchi, bean sprouts, carrots, sesame oil, scallions",
		Allergens:   "Contains: Soy, Sesame. May contain traces of gluten.",
		ImageURL:    "https://images.unsplash.com/photo-1498654896293-37aacf113fd9?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:      "4.4",
		IsSpicy:     true,
	},
	{
		Name:         "Garden Fresh Salad",
		Description:  "Mixed greens with seasonal vegetables and choice of dressing",
		Price:        "8.99",
		Calories:     220,
		Protein:      "8.0",
		Carbs:        "18.0",
		Fat:          "12.0",
		Ingredients:  "Mixed greens, cherry tomatoes, cucumber, carrots, red onion, croutons, choice of dressing",
		Allergens:    "Contains: Gluten (croutons). Dressing may contain dairy, eggs.",
		ImageURL:     "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:       "4.1",
		IsVegetarian: true,
	},
	{
		Name:         "Margherita Pizza",
		Description:  "Fresh mozzarella, tomato sauce, and basil on crispy crust",
		Price:        "11.99",
		Calories:     480,
		Protein:      "18.0",
		Carbs:        "58.0",
		Fat:          "16.0",
		Ingredients:  "Pizza dough, tomato sauce, fresh mozzarella, fresh basil, olive oil, oregano",
		Allergens:    "Contains: Gluten, Dairy. May contain traces of eggs.",
		ImageURL:     "https://images.unsplash.com/photo-1513104890138-7c749659a591?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:       "4.3",
		IsVegetarian: true,
	},
	{
		Name:         "All-Day Breakfast Burrito",
		Description:  "Scrambled eggs, cheese, potatoes, and salsa in a warm tortilla",
		Price:        "9.49",
		Calories:     460,
		Protein:      "20.0",
		Carbs:        "42.0",
		Fat:          "22.0",
		Ingredients:  "Scrambled eggs, cheddar cheese, hash browns, salsa, flour tortilla, bell peppers, onions",
		Allergens:    "Contains: Gluten, Dairy, Eggs. May contain traces of soy.",
		ImageURL:     "https://images.unsplash.com/photo-1565299507177-b0ac66763828?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
		Rating:       "4.2",
		IsVegetarian: true,
	},
}

// Meals seeds the base menu across all seven days, but only into an empty
// store — an existing menu, however it got there, is never touched.
func Meals(ctx context.Context, repo repository.MealRepository, logger *slog.Logger) error {
	count, err := repo.CountMeals(ctx)
	if err != nil {
		return fmt.Errorf("seed: counting meals: %w", err)
	}
	if count > 0 {
		logger.Info("menu already populated, skipping seed", slog.Int("meals", count))
		return nil
	}

	seeded := 0
	for _, day := range model.Days {
		for _, base := range baseMenu {
			meal := base
			meal.DayOfWeek = day
			if err := repo.CreateMeal(ctx, &meal); err != nil {
				return fmt.Errorf("seed: creating %q for %s: %w", meal.Name, day, err)
			}
			seeded++
		}
	}

	logger.Info("menu seeded", slog.Int("meals", seeded))
	return nil
}
