package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/whitebrim/melanoscan-backend/internal/database"
	"github.com/whitebrim/melanoscan-backend/internal/models"
	"github.com/whitebrim/melanoscan-backend/pkg/utils"
)

var (
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegisterUser creates an account. Registration is rejected when the
// email or username is already present; no user is created in that case.
func RegisterUser(ctx context.Context, email, username, password string) error {
	var existing uuid.UUID

	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT id FROM users WHERE email = $1`, email).Scan(&existing)
	if err == nil {
		return ErrDuplicateEmail
	} else if err != sql.ErrNoRows {
		return err
	}

	err = database.PostgresDB.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = $1`, username).Scan(&existing)
	if err == nil {
		return ErrDuplicateUsername
	} else if err != sql.ErrNoRows {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = database.PostgresDB.ExecContext(ctx,
		`INSERT INTO users (id, created_at, username, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), time.Now(), username, email, hash)
	return err
}

// AuthenticateUser verifies credentials and returns the account.
// An unknown username and a wrong password are indistinguishable to the
// caller: both yield ErrInvalidCredentials.
func AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User

	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT id, created_at, username, email, password_hash
		 FROM users WHERE username = $1`, username).
		Scan(&user.ID, &user.CreatedAt, &user.Username, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
