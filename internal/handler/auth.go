package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/apperror"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/auth"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/service"
)

// AuthHandler exposes the session endpoints: login, logout, and the
// current-user probe the frontend polls on page load.
type AuthHandler struct {
	svc *service.AuthService
	ttl time.Duration
}

// NewAuthHandler creates an AuthHandler. ttl is the session lifetime and
// doubles as the cookie Max-Age.
func NewAuthHandler(svc *service.AuthService, ttl time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, ttl: ttl}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin authenticates and sets the session cookie.
//
//	POST /api/login  {"username": "...", "password": "..."}
//
// The cookie is HttpOnly so script on the page can never read the token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Username and password required"))
		return
	}

	result, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    result.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.ttl.Seconds()),
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    result.User.Public(),
	})
}

// HandleLogout destroys the session and clears the cookie. Always succeeds:
// logging out without a session, or twice, returns the same 200.
//
//	POST /api/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(auth.TokenFromRequest(r))

	// MaxAge < 0 tells the browser to delete the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// HandleMe returns the authenticated user's public record. RequireAuth has
// already resolved the session, so a missing user here means the account
// was deleted out from under a live session.
//
//	GET /api/auth/user
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("Not authenticated"))
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}
