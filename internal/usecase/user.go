// Package usecase holds the application operations. Each method orchestrates
// exactly one business operation: validation, authorization, then persistence
// through the repository ports.
package usecase

import (
	"context"

	"github.com/sunriselabs/sunrise/internal/domain"
)

// UserUseCase defines the account and authentication operations.
type UserUseCase interface {
	// CreateUser validates and persists a new account, hashing the password
	// before it reaches the repository.
	CreateUser(ctx context.Context, cmd CreateUserCommand) (*domain.User, error)

	// Login verifies credentials and returns a signed session token carrying
	// the user's email as subject.
	Login(ctx context.Context, cmd LoginCommand) (string, error)

	// GetCurrentUser resolves a session token to the authenticated user.
	GetCurrentUser(ctx context.Context, token string) (*domain.User, error)

	// GetUsers returns a page of users; the caller must be an active admin.
	// The admin check takes precedence over the activity check.
	GetUsers(ctx context.Context, cmd GetUsersCommand, current *domain.User) ([]domain.User, error)

	// UpdateUser applies username and profile changes under the
	// ownership-or-admin rule.
	UpdateUser(ctx context.Context, cmd UpdateUserCommand, current *domain.User) (*domain.User, error)
}
