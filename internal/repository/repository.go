package repository

import (
	"context"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
)

// MealRepository is the meal record store contract.
//
// Reads return snapshots — callers never hold live references into the
// store. CreateMeal assigns the ID; UpdateMeal applies only the non-nil
// patch fields and never touches the ID. DeleteMeal and the getters signal
// a missing record with apperror.ErrNotFound.
type MealRepository interface {
	CreateMeal(ctx context.Context, meal *model.Meal) error
	GetMealByID(ctx context.Context, id string) (*model.Meal, error)
	GetMealsByDay(ctx context.Context, day string) ([]model.Meal, error)
	GetAllMeals(ctx context.Context) ([]model.Meal, error)
	UpdateMeal(ctx context.Context, id string, patch model.MealPatch) (*model.Meal, error)
	DeleteMeal(ctx context.Context, id string) error
	CountMeals(ctx context.Context) (int, error)
}

// UserRepository stores admin accounts. Username lookups are exact and
// case-sensitive.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}
