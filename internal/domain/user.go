// Package domain contains the core business entities and their invariants.
package domain

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// User represents an account in the system. Password holds the plaintext
// password only between construction and hashing; after CreateUser runs it
// always carries the bcrypt hash.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
}

// NewUser builds a user with a generated id, validating username, email and
// password strength. New accounts start active and non-admin.
func NewUser(username, email, password, firstName, lastName string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		IsAdmin:   false,
		IsActive:  true,
	}, nil
}

// ValidateUsername rejects usernames that are empty after trimming whitespace.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return newValidationError("username", "Username cannot be empty")
	}
	return nil
}

// ValidateEmail checks the address for valid syntax.
func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return newValidationError("email", "Email address is not valid")
	}
	return nil
}

// ValidatePassword applies the strength rules in order; the first failing
// rule's message is surfaced.
func ValidatePassword(password string) error {
	// length is measured in characters, not bytes
	if utf8.RuneCountInString(password) < 8 {
		return newValidationError("password", "Password must be at least 8 characters long")
	}
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasDigit {
		return newValidationError("password", "Password must contain at least one digit")
	}
	if !hasUpper {
		return newValidationError("password", "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		return newValidationError("password", "Password must contain at least one lowercase letter")
	}
	return nil
}

// UpdateUsername replaces the username after re-running the same validation
// applied at construction.
func (u *User) UpdateUsername(username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	u.Username = username
	return nil
}

// UpdateProfile applies name changes; a nil pointer leaves the field untouched.
func (u *User) UpdateProfile(firstName, lastName *string) {
	if firstName != nil {
		u.FirstName = *firstName
	}
	if lastName != nil {
		u.LastName = *lastName
	}
}

func (u *User) Activate()   { u.IsActive = true }
func (u *User) Deactivate() { u.IsActive = false }

func (u *User) GrantAdmin()  { u.IsAdmin = true }
func (u *User) RevokeAdmin() { u.IsAdmin = false }

// FullName joins the name fields, trimming when either is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CanManage reports whether the user may act on a resource owned by ownerID.
// This is the single ownership-or-admin rule applied to every owner-scoped
// operation, evaluated before any persistence access.
func (u *User) CanManage(ownerID uuid.UUID) bool {
	return u.ID == ownerID || u.IsAdmin
}
