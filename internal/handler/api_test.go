package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/auth"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/handler"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
	sqliteRepo "github.com/hcanning/hcann-CafeteriaMenu/internal/repository/sqlite"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/service"
)

// newTestAPI wires the full stack — router, handlers, services, in-memory
// store — exactly as the server does, with a fast bcrypt cost and a seeded
// admin account.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessions := auth.NewSessionStore(time.Minute)
	t.Cleanup(sessions.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	mealService := service.NewMealService(db, logger)
	authService := service.NewAuthService(db, sessions, auth.NewPasswordServiceForTest(4), logger)
	require.NoError(t, authService.EnsureAdmin(context.Background(), "hcanning", "technics1"))

	mealHandler := handler.NewMealHandler(mealService, validator.New())
	authHandler := handler.NewAuthHandler(authService, sessions.TTL())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.HandleHealth)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/meals", mealHandler.HandleListAll)
		r.Get("/meals/{day}", mealHandler.HandleListByDay)
		r.Get("/meal/{id}", mealHandler.HandleGetByID)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(sessions))
			r.Get("/auth/user", authHandler.HandleMe)
			r.Post("/admin/meals", mealHandler.HandleCreate)
			r.Put("/admin/meals/{id}", mealHandler.HandleUpdate)
			r.Delete("/admin/meals/{id}", mealHandler.HandleDelete)
		})
	})
	return r
}

// do runs one request against the router. The session cookie may be nil.
func do(t *testing.T, api http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	return rr
}

// login authenticates as the seeded admin and returns the session cookie.
func login(t *testing.T, api http.Handler) *http.Cookie {
	t.Helper()

	rr := do(t, api, http.MethodPost, "/api/login", map[string]string{
		"username": "hcanning",
		"password": "technics1",
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			require.NotEmpty(t, c.Value)
			require.True(t, c.HttpOnly, "session cookie must be HttpOnly")
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func fishAndChips() map[string]any {
	return map[string]any{
		"name":          "Fish & Chips",
		"description":   "Crispy beer-battered cod with golden fries",
		"price":         "9.99",
		"calories":      540,
		"protein":       "25.0",
		"carbs":         "45.0",
		"fat":           "22.0",
		"ingredients":   "Cod fillet, beer batter, potatoes",
		"allergens":     "Contains: Fish, Gluten, Eggs",
		"imageUrl":      "https://example.com/fish.jpg",
		"rating":        "4.3",
		"dayOfWeek":     "Monday",
		"isPescatarian": true,
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rr := do(t, api, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)

	t.Run("success", func(t *testing.T) {
		rr := do(t, api, http.MethodPost, "/api/login", map[string]string{
			"username": "hcanning",
			"password": "technics1",
		}, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Message string           `json:"message"`
			User    model.PublicUser `json:"user"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Login successful", body.Message)
		assert.Equal(t, "hcanning", body.User.Username)
		assert.Equal(t, "admin", body.User.Role)
	})

	t.Run("never leaks the password hash", func(t *testing.T) {
		rr := do(t, api, http.MethodPost, "/api/login", map[string]string{
			"username": "hcanning",
			"password": "technics1",
		}, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "password")
		assert.NotContains(t, rr.Body.String(), "$2a$")
	})

	t.Run("failures are indistinguishable", func(t *testing.T) {
		unknown := do(t, api, http.MethodPost, "/api/login", map[string]string{
			"username": "nobody", "password": "technics1",
		}, nil)
		wrongPw := do(t, api, http.MethodPost, "/api/login", map[string]string{
			"username": "hcanning", "password": "wrong",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
		assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := do(t, api, http.MethodPost, "/api/login", map[string]string{"username": "hcanning"}, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthGating(t *testing.T) {
	api := newTestAPI(t)

	protected := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/auth/user"},
		{http.MethodPost, "/api/admin/meals"},
		{http.MethodPut, "/api/admin/meals/some-id"},
		{http.MethodDelete, "/api/admin/meals/some-id"},
	}

	t.Run("no cookie", func(t *testing.T) {
		for _, route := range protected {
			rr := do(t, api, route.method, route.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		bad := &http.Cookie{Name: auth.SessionCookieName, Value: "not-a-real-token"}
		for _, route := range protected {
			rr := do(t, api, route.method, route.path, nil, bad)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
		}
	})
}

func TestCurrentUser(t *testing.T) {
	api := newTestAPI(t)
	cookie := login(t, api)

	rr := do(t, api, http.MethodGet, "/api/auth/user", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var user model.PublicUser
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&user))
	assert.Equal(t, "hcanning", user.Username)
	assert.Equal(t, "admin", user.Role)
}

func TestLogout(t *testing.T) {
	api := newTestAPI(t)
	cookie := login(t, api)

	rr := do(t, api, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	// The response tells the browser to drop the cookie.
	for _, c := range rr.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			assert.Less(t, c.MaxAge, 0, "logout must expire the session cookie")
		}
	}

	// The old token is dead server-side, not just client-side.
	probe := do(t, api, http.MethodGet, "/api/auth/user", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, probe.Code)

	// Logging out again, or without any session, still succeeds.
	again := do(t, api, http.MethodPost, "/api/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, again.Code)
	anon := do(t, api, http.MethodPost, "/api/logout", nil, nil)
	assert.Equal(t, http.StatusOK, anon.Code)
}

// TestMealLifecycle exercises the full admin flow: create, read, filter,
// update, delete.
func TestMealLifecycle(t *testing.T) {
	api := newTestAPI(t)
	cookie := login(t, api)

	// Create.
	rr := do(t, api, http.MethodPost, "/api/admin/meals", fishAndChips(), cookie)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created model.Meal
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Fish & Chips", created.Name)
	assert.True(t, created.IsPescatarian)
	assert.False(t, created.IsVegan, "unset flags default to false")

	// Read back, anonymously — reads are public.
	rr = do(t, api, http.MethodGet, "/api/meal/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// Day listing with matching filters finds it.
	rr = do(t, api, http.MethodGet, "/api/meals/Monday?search=fish&price=8-12&tags=pescatarian", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var meals []model.Meal
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&meals))
	require.Len(t, meals, 1)
	assert.Equal(t, created.ID, meals[0].ID)

	// A non-matching criterion excludes it; unknown buckets match nothing.
	for _, query := range []string{"price=under-8", "tags=vegan", "search=sushi", "price=mystery"} {
		rr = do(t, api, http.MethodGet, "/api/meals/Monday?"+query, nil, nil)
		require.Equal(t, http.StatusOK, rr.Code, query)
		meals = nil
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&meals))
		assert.Empty(t, meals, query)
	}

	// Partial update: price changes, everything else survives.
	rr = do(t, api, http.MethodPut, "/api/admin/meals/"+created.ID, map[string]any{"price": "5.00"}, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated model.Meal
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, "5.00", updated.Price)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Rating, updated.Rating)
	assert.True(t, updated.IsPescatarian)

	// Now it shows up under the cheaper bucket.
	rr = do(t, api, http.MethodGet, "/api/meals/Monday?price=under-8", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	meals = nil
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&meals))
	require.Len(t, meals, 1)

	// Delete, then every read agrees it's gone.
	rr = do(t, api, http.MethodDelete, "/api/admin/meals/"+created.ID, nil, cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Meal deleted successfully")

	rr = do(t, api, http.MethodGet, "/api/meal/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, api, http.MethodDelete, "/api/admin/meals/"+created.ID, nil, cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateMeal_Validation(t *testing.T) {
	api := newTestAPI(t)
	cookie := login(t, api)

	t.Run("missing required field", func(t *testing.T) {
		body := fishAndChips()
		delete(body, "name")
		rr := do(t, api, http.MethodPost, "/api/admin/meals", body, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid day", func(t *testing.T) {
		body := fishAndChips()
		body["dayOfWeek"] = "Funday"
		rr := do(t, api, http.MethodPost, "/api/admin/meals", body, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/meals", bytes.NewBufferString("{nope"))
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListByDay_InvalidDay(t *testing.T) {
	api := newTestAPI(t)

	for _, day := range []string{"Funday", "monday"} {
		rr := do(t, api, http.MethodGet, "/api/meals/"+day, nil, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, day)
	}
}

func TestListAll(t *testing.T) {
	api := newTestAPI(t)
	cookie := login(t, api)

	monday := fishAndChips()
	tuesday := fishAndChips()
	tuesday["name"] = "Sushi Platter"
	tuesday["dayOfWeek"] = "Tuesday"

	for _, body := range []map[string]any{monday, tuesday} {
		rr := do(t, api, http.MethodPost, "/api/admin/meals", body, cookie)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := do(t, api, http.MethodGet, "/api/meals", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var meals []model.Meal
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&meals))
	assert.Len(t, meals, 2)

	rr = do(t, api, http.MethodGet, "/api/meals?search=sushi", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	meals = nil
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&meals))
	require.Len(t, meals, 1)
	assert.Equal(t, "Sushi Platter", meals[0].Name)
}
