package domain

import "errors"

var (
	// ErrUserNotFound indicates that no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrMoodNotFound indicates that no mood matched the id/owner pair.
	ErrMoodNotFound = errors.New("mood not found")
	// ErrAlreadyExists indicates a unique-constraint collision (email or username).
	ErrAlreadyExists = errors.New("user with this email or username already exists")
	// ErrInvalidCredentials indicates a login attempt with a wrong password.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrInactiveUser indicates the account is deactivated.
	ErrInactiveUser = errors.New("user account is inactive")
	// ErrPermissionDenied indicates the caller is neither owner nor admin.
	ErrPermissionDenied = errors.New("not enough permissions")
	// ErrInvalidToken indicates a malformed, expired or subject-less session token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrIntegrity indicates a foreign-key or other integrity constraint violation.
	ErrIntegrity = errors.New("integrity constraint violated")
)

// ValidationError reports a field-level rule violation. The same error kind
// is raised at entity construction and at mutation methods.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
