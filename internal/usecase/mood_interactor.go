package usecase

import (
	"context"
	"log/slog"

	"github.com/sunriselabs/sunrise/internal/core/ports"
	"github.com/sunriselabs/sunrise/internal/domain"
)

// moodUseCase implements MoodUseCase.
type moodUseCase struct {
	moods  ports.MoodRepository
	logger *slog.Logger
}

// NewMoodUseCase creates the mood interactor over a repository port.
func NewMoodUseCase(moods ports.MoodRepository, logger *slog.Logger) MoodUseCase {
	return &moodUseCase{moods: moods, logger: logger}
}

func (uc *moodUseCase) RegisterMood(ctx context.Context, cmd RegisterMoodCommand, current *domain.User) (*domain.Mood, error) {
	emotions, err := buildEmotions(cmd.Emotions)
	if err != nil {
		return nil, err
	}

	// The owner is always the authenticated caller; a caller-supplied user id
	// is never trusted.
	mood, err := domain.NewMood(current.ID, cmd.RegistryType, cmd.VisualScale, emotions, buildTriggers(cmd.Triggers), cmd.Description)
	if err != nil {
		return nil, err
	}

	saved, err := uc.moods.Save(ctx, mood)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("mood registered", "mood_id", saved.ID, "user_id", saved.UserID)
	return saved, nil
}

func (uc *moodUseCase) ListMoods(ctx context.Context, cmd GetMoodsCommand, current *domain.User) ([]domain.Mood, error) {
	if !current.CanManage(cmd.UserID) {
		return nil, domain.ErrPermissionDenied
	}

	offset, limit := clampPage(cmd.Offset, cmd.Limit)
	return uc.moods.ListByUser(ctx, cmd.UserID, offset, limit)
}

func (uc *moodUseCase) UpdateMood(ctx context.Context, cmd UpdateMoodCommand, current *domain.User) (*domain.Mood, error) {
	if !current.CanManage(cmd.UserID) {
		return nil, domain.ErrPermissionDenied
	}

	emotions, err := buildEmotions(cmd.Emotions)
	if err != nil {
		return nil, err
	}

	mood, err := uc.moods.FindByID(ctx, cmd.MoodID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := mood.UpdateVisualScale(cmd.VisualScale); err != nil {
		return nil, err
	}
	mood.UpdateEmotions(emotions)
	mood.UpdateTriggers(buildTriggers(cmd.Triggers))
	mood.UpdateDescription(cmd.Description)

	updated, err := uc.moods.Update(ctx, mood)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("mood updated", "mood_id", updated.ID, "user_id", updated.UserID)
	return updated, nil
}

func (uc *moodUseCase) DeleteMood(ctx context.Context, cmd DeleteMoodCommand, current *domain.User) error {
	if !current.CanManage(cmd.UserID) {
		return domain.ErrPermissionDenied
	}

	if err := uc.moods.Delete(ctx, cmd.MoodID, cmd.UserID); err != nil {
		return err
	}

	uc.logger.Info("mood deleted", "mood_id", cmd.MoodID, "user_id", cmd.UserID)
	return nil
}

// buildEmotions validates raw emotion inputs into domain value objects.
func buildEmotions(inputs []EmotionInput) ([]domain.AssociatedEmotion, error) {
	emotions := make([]domain.AssociatedEmotion, 0, len(inputs))
	for _, in := range inputs {
		emotion, err := domain.NewAssociatedEmotion(in.Name, in.Intensity)
		if err != nil {
			return nil, err
		}
		emotions = append(emotions, emotion)
	}
	return emotions, nil
}

func buildTriggers(inputs []TriggerInput) []domain.EmotionalTrigger {
	triggers := make([]domain.EmotionalTrigger, 0, len(inputs))
	for _, in := range inputs {
		triggers = append(triggers, domain.EmotionalTrigger{Name: in.Name})
	}
	return triggers
}
