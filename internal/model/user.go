package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The json tags shape the public user resource returned by the
// auth endpoints; the password hash is never serialized.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – display name chosen at registration.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Name         string    `json:"name"`       // users.name
	Email        string    `json:"email"`      // users.email
	PasswordHash string    `json:"-"`          // users.password_hash (never exposed)
	CreatedAt    time.Time `json:"created_at"` // users.created_at
	UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}
