package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sunriselabs/sunrise/internal/auth"
	"github.com/sunriselabs/sunrise/internal/core/ports"
	"github.com/sunriselabs/sunrise/internal/domain"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	users  ports.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewUserUseCase creates the user interactor over a repository port and the
// token service.
func NewUserUseCase(users ports.UserRepository, tokens *auth.TokenService, logger *slog.Logger) UserUseCase {
	return &userUseCase{users: users, tokens: tokens, logger: logger}
}

func (uc *userUseCase) CreateUser(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	user, err := domain.NewUser(cmd.Username, cmd.Email, cmd.Password, cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash

	saved, err := uc.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user created", "user_id", saved.ID, "username", saved.Username)
	return saved, nil
}

func (uc *userUseCase) Login(ctx context.Context, cmd LoginCommand) (string, error) {
	user, err := uc.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return "", err
	}

	if !user.IsActive {
		return "", domain.ErrInactiveUser
	}

	if !auth.VerifyPassword(cmd.Password, user.Password) {
		uc.logger.Warn("login rejected", "email", cmd.Email)
		return "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.Email)
	if err != nil {
		return "", err
	}

	uc.logger.Info("login succeeded", "user_id", user.ID)
	return token, nil
}

func (uc *userUseCase) GetCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	email, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return uc.users.FindByEmail(ctx, email)
}

func (uc *userUseCase) GetUsers(ctx context.Context, cmd GetUsersCommand, current *domain.User) ([]domain.User, error) {
	if !current.IsAdmin {
		return nil, domain.ErrPermissionDenied
	}
	if !current.IsActive {
		return nil, domain.ErrInactiveUser
	}

	offset, limit := clampPage(cmd.Offset, cmd.Limit)
	return uc.users.FindAll(ctx, offset, limit)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, cmd UpdateUserCommand, current *domain.User) (*domain.User, error) {
	if !current.CanManage(cmd.UserID) {
		return nil, domain.ErrPermissionDenied
	}

	user, err := uc.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Username != "" && cmd.Username != user.Username {
		if err := user.UpdateUsername(cmd.Username); err != nil {
			return nil, err
		}
	}

	if cmd.FirstName != nil || cmd.LastName != nil {
		user.UpdateProfile(cmd.FirstName, cmd.LastName)
	}

	updated, err := uc.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user updated", "user_id", updated.ID)
	return updated, nil
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// clampPage bounds pagination parameters: offset >= 0, limit in [1,100]
// with a default of 10.
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}
