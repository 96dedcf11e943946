package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserUnauthorized is returned when credentials do not match a user.
	ErrUserUnauthorized = errors.New("user unauthorized")
)

// User represents a registered user and their profile.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// NewUser creates a new User with a hashed password and current timestamps.
func NewUser(name, email, password string) (*User, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("invalid email address")
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// NewUserFromData creates a User from raw data (used for DB hydration).
func NewUserFromData(
	id uuid.UUID,
	name, email, password string,
	avatarURL *string,
	created, updated time.Time,
) *User {
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Password:  password,
		AvatarURL: avatarURL,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}
