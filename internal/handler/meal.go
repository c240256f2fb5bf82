package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/apperror"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/filter"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/service"
)

// MealHandler exposes the menu endpoints: public reads with filtering, and
// the admin-only create/update/delete operations.
type MealHandler struct {
	svc      *service.MealService
	validate *validator.Validate
}

// NewMealHandler creates a MealHandler.
func NewMealHandler(svc *service.MealService, validate *validator.Validate) *MealHandler {
	return &MealHandler{svc: svc, validate: validate}
}

// filterSpec builds a filter spec from the request's query string.
//
//	?search=fish&price=under-8,8-12&tags=vegan,spicy
//
// Absent parameters leave their criterion empty, so a bare request is the
// identity filter.
func filterSpec(r *http.Request) filter.Spec {
	q := r.URL.Query()
	return filter.Spec{
		Search:       q.Get("search"),
		PriceBuckets: splitCSV(q.Get("price")),
		DietaryTags:  splitCSV(q.Get("tags")),
	}
}

// splitCSV splits a comma-separated query value, dropping empty segments so
// "?tags=" and "?tags=vegan," behave sensibly.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// HandleListAll returns every meal on the menu, filtered.
//
//	GET /api/meals?search=&price=&tags=
func (h *MealHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	meals, err := h.svc.ListAll(r.Context(), filterSpec(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// HandleListByDay returns the meals offered on one day, filtered.
//
//	GET /api/meals/{day}?search=&price=&tags=
func (h *MealHandler) HandleListByDay(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")

	meals, err := h.svc.ListByDay(r.Context(), day, filterSpec(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// HandleGetByID returns a single meal.
//
//	GET /api/meal/{id}
func (h *MealHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	meal, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// HandleCreate creates a new meal. Admin only — the route group applies
// RequireAuth before this runs.
//
//	POST /api/admin/meals
func (h *MealHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.InsertMeal
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Invalid meal data"))
		return
	}

	if err := h.validate.Struct(in); err != nil {
		writeError(w, validationError(err))
		return
	}

	meal, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

// HandleUpdate applies a partial update to a meal. Fields absent from the
// body are left untouched.
//
//	PUT /api/admin/meals/{id}
func (h *MealHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch model.MealPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Invalid meal data"))
		return
	}

	meal, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// HandleDelete removes a meal.
//
//	DELETE /api/admin/meals/{id}
func (h *MealHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Meal deleted successfully"})
}

// validationError converts a validator failure into the standard domain
// error, naming the first offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		return apperror.ValidationFailed(field, "Field '"+field+"' is missing or invalid")
	}
	return apperror.ValidationFailed("body", "Invalid meal data")
}
