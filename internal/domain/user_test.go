package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Mona", "mona@gmail.com", 20)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := uuid.Parse(user.ID); err != nil {
		t.Errorf("Expected a UUID id, got %q", user.ID)
	}
	if user.Name != "Mona" || user.Email != "mona@gmail.com" || user.Age != 20 {
		t.Errorf("Unexpected fields: %+v", user)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	other, err := NewUser("Mona", "mona@gmail.com", 20)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if other.ID == user.ID {
		t.Error("Expected distinct ids for distinct users")
	}
}

func TestNewUserInvalid(t *testing.T) {
	tests := []struct {
		name    string
		uName   string
		email   string
		age     int
		wantErr error
	}{
		{"empty name", "", "a@b.c", 1, ErrEmptyName},
		{"empty email", "A", "", 1, ErrEmptyEmail},
		{"zero age", "A", "a@b.c", 0, ErrInvalidAge},
		{"negative age", "A", "a@b.c", -3, ErrInvalidAge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.uName, tc.email, tc.age)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestUserValidateEmptyID(t *testing.T) {
	u := User{Name: "A", Email: "a@b.c", Age: 1}
	if err := u.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}
}

func TestUserReplace(t *testing.T) {
	user, err := NewUser("Ridho", "ridho@gmail.com", 28)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	id, created, updated := user.ID, user.CreatedAt, user.UpdatedAt

	user.Replace("Ridho Febrian", "ridhofebrian@gmail.com", 29)

	if user.ID != id || !user.CreatedAt.Equal(created) {
		t.Error("Replace must not touch ID or CreatedAt")
	}
	if user.Name != "Ridho Febrian" || user.Email != "ridhofebrian@gmail.com" || user.Age != 29 {
		t.Errorf("Unexpected fields after replace: %+v", user)
	}
	if user.UpdatedAt.Before(updated) {
		t.Error("Expected UpdatedAt to move forward")
	}
}
