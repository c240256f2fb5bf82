// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-tier split:
//
//	Handler (HTTP)     → parses requests, writes responses
//	Service (business) → validates, enforces rules, orchestrates
//	Repository (data)  → reads/writes the store
//
// Services receive repository interfaces, never concrete stores, so tests
// inject mocks and the HTTP layer never touches SQL.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/apperror"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/filter"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/repository"
)

// MealService handles business rules for menu records: day validation,
// numeric canonicalization, dietary-flag defaulting, and filter application.
type MealService struct {
	repo   repository.MealRepository
	logger *slog.Logger
}

// NewMealService creates a MealService.
func NewMealService(repo repository.MealRepository, logger *slog.Logger) *MealService {
	return &MealService{
		repo:   repo,
		logger: logger,
	}
}

// ListByDay returns the meals offered on the given day, with the filter
// spec applied. The day must be one of the seven recognized names —
// case-sensitive, so "monday" fails validation. An empty result for a
// valid day is not an error.
func (s *MealService) ListByDay(ctx context.Context, day string, spec filter.Spec) ([]model.Meal, error) {
	if !model.ValidDay(day) {
		return nil, apperror.ValidationFailed("day", "Invalid day of week")
	}

	meals, err := s.repo.GetMealsByDay(ctx, day)
	if err != nil {
		s.logger.Error("failed to list meals by day",
			slog.String("day", day),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing meals for %s: %w", day, err)
	}

	return filter.Apply(meals, spec), nil
}

// ListAll returns every meal, with the filter spec applied.
func (s *MealService) ListAll(ctx context.Context, spec filter.Spec) ([]model.Meal, error) {
	meals, err := s.repo.GetAllMeals(ctx)
	if err != nil {
		s.logger.Error("failed to list meals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing meals: %w", err)
	}

	return filter.Apply(meals, spec), nil
}

// GetByID retrieves a single meal. Returns apperror.ErrNotFound for an
// unknown id.
func (s *MealService) GetByID(ctx context.Context, id string) (*model.Meal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "meal ID is required")
	}

	return s.repo.GetMealByID(ctx, id)
}

// Create validates and stores a new meal.
//
// The input has already passed the boundary schema (required fields
// present); this method enforces the value rules — day whitelist, numeric
// ranges — and canonicalizes the decimal fields before anything persists.
// Nothing is written on a validation failure.
func (s *MealService) Create(ctx context.Context, in model.InsertMeal) (*model.Meal, error) {
	if err := normalizeInsert(&in); err != nil {
		return nil, err
	}

	meal := model.NewMeal(in)
	if err := s.repo.CreateMeal(ctx, &meal); err != nil {
		s.logger.Error("failed to create meal",
			slog.String("name", meal.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating meal: %w", err)
	}

	s.logger.Info("meal created",
		slog.String("id", meal.ID),
		slog.String("name", meal.Name),
		slog.String("day", meal.DayOfWeek),
	)

	return &meal, nil
}

// Update applies a partial update: only fields present in the patch change,
// the id never does. Supplied decimal fields are canonicalized with the
// same rules as Create. Returns apperror.ErrNotFound for an unknown id.
func (s *MealService) Update(ctx context.Context, id string, patch model.MealPatch) (*model.Meal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "meal ID is required")
	}

	if err := normalizePatch(&patch); err != nil {
		return nil, err
	}

	meal, err := s.repo.UpdateMeal(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("meal updated",
		slog.String("id", meal.ID),
		slog.String("name", meal.Name),
	)

	return meal, nil
}

// Delete removes a meal permanently. Returns apperror.ErrNotFound when no
// record existed to delete.
func (s *MealService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "meal ID is required")
	}

	if err := s.repo.DeleteMeal(ctx, id); err != nil {
		return err
	}

	s.logger.Info("meal deleted", slog.String("id", id))
	return nil
}

// normalizeInsert enforces the value rules on a full create payload and
// rewrites the decimal fields into canonical form.
func normalizeInsert(in *model.InsertMeal) error {
	if !model.ValidDay(in.DayOfWeek) {
		return apperror.ValidationFailed("dayOfWeek", "Invalid day of week")
	}
	if in.Calories == nil || *in.Calories < 0 {
		return apperror.ValidationFailed("calories", "calories must be a non-negative integer")
	}

	var err error
	if in.Price, err = model.CanonicalPrice(in.Price); err != nil {
		return apperror.ValidationFailed("price", "price must be a non-negative amount")
	}
	if in.Protein, err = model.CanonicalGrams(in.Protein); err != nil {
		return apperror.ValidationFailed("protein", "protein must be non-negative grams")
	}
	if in.Carbs, err = model.CanonicalGrams(in.Carbs); err != nil {
		return apperror.ValidationFailed("carbs", "carbs must be non-negative grams")
	}
	if in.Fat, err = model.CanonicalGrams(in.Fat); err != nil {
		return apperror.ValidationFailed("fat", "fat must be non-negative grams")
	}
	if in.Rating, err = model.CanonicalRating(in.Rating); err != nil {
		return apperror.ValidationFailed("rating", "rating must be between 1.0 and 5.0")
	}
	return nil
}

// normalizePatch applies the same value rules to whichever fields the patch
// actually carries. Required-ness is not re-checked — absence means "keep".
func normalizePatch(p *model.MealPatch) error {
	if p.DayOfWeek != nil && !model.ValidDay(*p.DayOfWeek) {
		return apperror.ValidationFailed("dayOfWeek", "Invalid day of week")
	}
	if p.Calories != nil && *p.Calories < 0 {
		return apperror.ValidationFailed("calories", "calories must be a non-negative integer")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperror.ValidationFailed("name", "name must not be empty")
	}

	canon := func(field string, dst **string, fn func(string) (string, error), msg string) error {
		if *dst == nil {
			return nil
		}
		v, err := fn(**dst)
		if err != nil {
			return apperror.ValidationFailed(field, msg)
		}
		*dst = &v
		return nil
	}

	if err := canon("price", &p.Price, model.CanonicalPrice, "price must be a non-negative amount"); err != nil {
		return err
	}
	if err := canon("protein", &p.Protein, model.CanonicalGrams, "protein must be non-negative grams"); err != nil {
		return err
	}
	if err := canon("carbs", &p.Carbs, model.CanonicalGrams, "carbs must be non-negative grams"); err != nil {
		return err
	}
	if err := canon("fat", &p.Fat, model.CanonicalGrams, "fat must be non-negative grams"); err != nil {
		return err
	}
	if err := canon("rating", &p.Rating, model.CanonicalRating, "rating must be between 1.0 and 5.0"); err != nil {
		return err
	}
	return nil
}
