package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the single resource managed by the API.
// CreatedAt and UpdatedAt are store bookkeeping and are not serialized.
type User struct {
	ID        string    `json:"id"    example:"550e8400-e29b-41d4-a716-446655440000" format:"uuid"`
	Name      string    `json:"name"  example:"John Doe"`
	Email     string    `json:"email" example:"johndoe@gmail.com"                     format:"email"`
	Age       int       `json:"age"   example:"25"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NewUser creates a User with a freshly generated ID and timestamps.
// Returns an error if validation fails.
func NewUser(name, email string, age int) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error wrapping ErrValidation if any field fails validation.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if u.Age <= 0 {
		return ErrInvalidAge
	}
	return nil
}

// Replace overwrites every mutable field and bumps UpdatedAt.
// The ID and CreatedAt are left untouched.
func (u *User) Replace(name, email string, age int) {
	u.Name = name
	u.Email = email
	u.Age = age
	u.UpdatedAt = time.Now().UTC()
}
