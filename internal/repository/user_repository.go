package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/arbelos/fieldbook/internal/model"
	"github.com/arbelos/fieldbook/internal/utils"
)

// UserRepo persists accounts in the 'users' table.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user with a bcrypt-hashed password.  The username is
// normalized to lower case.  Returns ErrUsernameTaken on a duplicate key.
func (r *UserRepo) Create(ctx context.Context, username, password, fullName, email, role string, cost int) error {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, full_name, email, role) VALUES (?,?,?,?,?)",
		username, hash, fullName, email, role)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT username, password_hash, full_name, email, role, is_active, created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.Username, &u.PasswordHash, &u.FullName, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt)
	return u, err
}
