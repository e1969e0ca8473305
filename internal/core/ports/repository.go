// Package ports defines the persistence contracts the use cases depend on,
// independent of storage technology. The postgres and memory adapters both
// implement them.
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sunriselabs/sunrise/internal/domain"
)

// UserRepository is the port for user persistence.
type UserRepository interface {
	// Save persists a new user. A unique-constraint collision on email or
	// username surfaces domain.ErrAlreadyExists.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByEmail returns the user with the given email, or
	// domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID returns the user with the given id, or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// FindAll returns a page of users in insertion order.
	FindAll(ctx context.Context, offset, limit int) ([]domain.User, error)

	// Update persists changes to an existing user. Uniqueness is re-checked;
	// collisions surface domain.ErrAlreadyExists.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

// MoodRepository is the port for mood persistence. Nested emotions and
// triggers are stored and loaded with their mood.
type MoodRepository interface {
	// Save persists a new mood with its nested records. A foreign-key failure
	// on the owner surfaces domain.ErrIntegrity.
	Save(ctx context.Context, mood *domain.Mood) (*domain.Mood, error)

	// ListByUser returns a page of the user's moods in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Mood, error)

	// FindByID returns the mood with the given id owned by userID, or
	// domain.ErrMoodNotFound.
	FindByID(ctx context.Context, moodID, userID uuid.UUID) (*domain.Mood, error)

	// Update replaces the mood's mutable fields and nested records.
	Update(ctx context.Context, mood *domain.Mood) (*domain.Mood, error)

	// Delete removes the mood with the given id owned by userID, or returns
	// domain.ErrMoodNotFound.
	Delete(ctx context.Context, moodID, userID uuid.UUID) error
}
