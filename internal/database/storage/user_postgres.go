package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunriselabs/sunrise/internal/domain"
)

// UserStorage implements ports.UserRepository over PostgreSQL.
type UserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStorage creates a PostgreSQL-backed user repository.
func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

func userToModel(u *domain.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
	}
}

func userToEntity(m *UserModel) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		IsAdmin:   m.IsAdmin,
		IsActive:  m.IsActive,
	}
}

// Save inserts a new user row, mapping unique-constraint collisions to
// domain.ErrAlreadyExists.
func (s *UserStorage) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()

	model := userToModel(user)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyExists
		}
		s.logger.Error("failed to save user", "username", user.Username, "error", err)
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("user saved",
		"user_id", model.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return userToEntity(model), nil
}

// FindByEmail returns the user with the given email.
func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("failed to find user by email", "error", err)
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return userToEntity(&model), nil
}

// FindByID returns the user with the given id.
func (s *UserStorage) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var model UserModel
	err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("failed to find user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return userToEntity(&model), nil
}

// FindAll returns a page of users in insertion order.
func (s *UserStorage) FindAll(ctx context.Context, offset, limit int) ([]domain.User, error) {
	start := time.Now()

	var models []UserModel
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		s.logger.Error("failed to list users", "offset", offset, "limit", limit, "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *userToEntity(&models[i]))
	}

	s.logger.Info("users listed",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// Update rewrites an existing user row, re-checking uniqueness.
func (s *UserStorage) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	var existing UserModel
	err := s.db.WithContext(ctx).First(&existing, "id = ?", user.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user for update: %w", err)
	}

	model := userToModel(user)
	model.CreatedAt = existing.CreatedAt
	if err := s.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyExists
		}
		s.logger.Error("failed to update user", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("update user: %w", err)
	}

	return userToEntity(model), nil
}
