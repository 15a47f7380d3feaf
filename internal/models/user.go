package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record in PostgreSQL. Created at registration,
// immutable afterwards.
type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Don't return password hash in JSON
}
