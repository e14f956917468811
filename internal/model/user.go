package model

import "time"

// User represents an account row in the `users` table.  The username is the
// primary key; accounts are never deleted, only deactivated by clearing
// IsActive.  Tokens belonging to a deactivated user are rejected on their
// next use by the auth middleware.
//
// Fields:
//
//	Username     – unique account name, primary key.
//	PasswordHash – bcrypt hashed password.
//	FullName     – optional display name.
//	Email        – optional contact address.
//	Role         – account role string ("admin" or "contractor").
//	IsActive     – whether the account may authenticate.
//	CreatedAt    – timestamp of registration.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
