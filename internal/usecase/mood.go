package usecase

import (
	"context"

	"github.com/sunriselabs/sunrise/internal/domain"
)

// MoodUseCase defines the mood journal operations. Every owner-scoped
// operation applies the ownership-or-admin rule before touching persistence.
type MoodUseCase interface {
	// RegisterMood creates a mood owned by the authenticated caller.
	RegisterMood(ctx context.Context, cmd RegisterMoodCommand, current *domain.User) (*domain.Mood, error)

	// ListMoods returns a page of the target user's moods in insertion order.
	ListMoods(ctx context.Context, cmd GetMoodsCommand, current *domain.User) ([]domain.Mood, error)

	// UpdateMood replaces the scale, emotions, triggers and description of an
	// existing mood.
	UpdateMood(ctx context.Context, cmd UpdateMoodCommand, current *domain.User) (*domain.Mood, error)

	// DeleteMood removes a mood by id and owner.
	DeleteMood(ctx context.Context, cmd DeleteMoodCommand, current *domain.User) error
}
