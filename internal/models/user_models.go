package models

import "time"

// DefaultUserRole is assigned to users registered without an explicit role.
const DefaultUserRole = "specialist"

// User represents an account that owns clients.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means never sent in JSON responses
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
