// Package service — authentication business logic.
//
// AuthService sits between the HTTP handlers and the auth utilities:
//
//	AuthHandler (HTTP) → AuthService (rules) → UserRepository (store)
//	                   ↘ SessionStore (server-side sessions)
//	                   ↘ PasswordService (bcrypt)
//
// The session lifecycle per client is Anonymous → Authenticated (Login) →
// Anonymous again, either through Logout or through TTL expiry in the
// session store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/apperror"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/auth"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/repository"
)

// invalidCredentials is the single error for every login failure mode.
// Unknown username and wrong password MUST be indistinguishable to the
// caller, otherwise the endpoint can be used to enumerate accounts.
func invalidCredentials() error {
	return apperror.Unauthorized("Invalid credentials")
}

// AuthService handles login, logout, session resolution, and the one-time
// admin bootstrap.
type AuthService struct {
	users     repository.UserRepository
	sessions  *auth.SessionStore
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions *auth.SessionStore,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginResult bundles the authenticated user and the new session token so
// the handler can set the cookie and respond in one step.
type LoginResult struct {
	User  *model.User
	Token string
}

// Login verifies the credentials and establishes a new server-side session.
//
// Username matching is exact and case-sensitive. Both failure modes —
// no such user, wrong password — return the identical Unauthorized error;
// the bcrypt comparison itself runs in constant time.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperror.ValidationFailed("credentials", "Username and password required")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, invalidCredentials()
	}

	token := s.sessions.Create(user.ID)

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &LoginResult{User: user, Token: token}, nil
}

// Logout destroys the session behind the given token. Safe to call with an
// empty or unknown token — logging out twice is not an error.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.sessions.Destroy(token)
}

// CurrentUser resolves an authenticated userID (set by the RequireAuth
// middleware) to the full user record. Returns Unauthorized if the account
// no longer exists — a session must never outlive its user.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Not authenticated")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Not authenticated")
		}
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", userID, err)
	}

	return user, nil
}

// EnsureAdmin seeds the single admin account if it doesn't exist yet.
//
// Check-then-create, so restarts never duplicate the account and an
// existing admin's password is never silently overwritten.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("service/auth: checking for admin account: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing admin password: %w", err)
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := s.users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("service/auth: creating admin account: %w", err)
	}

	s.logger.Info("admin account created", slog.String("username", username))
	return nil
}
