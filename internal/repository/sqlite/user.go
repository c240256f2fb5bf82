package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/hcanning/hcann-CafeteriaMenu/internal/apperror"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/model"
	"github.com/hcanning/hcann-CafeteriaMenu/internal/repository"
)

var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new admin account, assigning a fresh xid. Duplicate
// usernames are reported as a Conflict (the username column is UNIQUE).
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

// GetUserByID returns the user with the given internal id.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `id = ?`, id)
}

// GetUserByUsername looks up a user by username. SQLite's default BINARY
// collation makes the comparison exact and case-sensitive, so "HCanning"
// never matches "hcanning".
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.getUser(ctx, `username = ?`, username)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at
		 FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprintf("%v", arg))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	return &u, nil
}
