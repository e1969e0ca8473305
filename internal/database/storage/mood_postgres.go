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

// MoodStorage implements ports.MoodRepository over PostgreSQL. Nested
// emotion and trigger rows live and die with their mood.
type MoodStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewMoodStorage creates a PostgreSQL-backed mood repository.
func NewMoodStorage(db *gorm.DB, logger *slog.Logger) *MoodStorage {
	return &MoodStorage{db: db, logger: logger}
}

func moodToModel(m *domain.Mood) *MoodModel {
	emotions := make([]EmotionModel, 0, len(m.Emotions))
	for _, e := range m.Emotions {
		emotions = append(emotions, EmotionModel{MoodID: m.ID, Name: string(e.Name), Intensity: e.Intensity})
	}
	triggers := make([]TriggerModel, 0, len(m.Triggers))
	for _, t := range m.Triggers {
		triggers = append(triggers, TriggerModel{MoodID: m.ID, Name: t.Name})
	}
	return &MoodModel{
		ID:           m.ID,
		UserID:       m.UserID,
		RegistryType: string(m.RegistryType),
		VisualScale:  int(m.VisualScale),
		Description:  m.Description,
		Emotions:     emotions,
		Triggers:     triggers,
	}
}

func moodToEntity(m *MoodModel) *domain.Mood {
	emotions := make([]domain.AssociatedEmotion, 0, len(m.Emotions))
	for _, e := range m.Emotions {
		emotions = append(emotions, domain.AssociatedEmotion{Name: domain.EmotionName(e.Name), Intensity: e.Intensity})
	}
	triggers := make([]domain.EmotionalTrigger, 0, len(m.Triggers))
	for _, t := range m.Triggers {
		triggers = append(triggers, domain.EmotionalTrigger{Name: t.Name})
	}
	return &domain.Mood{
		ID:           m.ID,
		UserID:       m.UserID,
		RegistryType: domain.RegistryType(m.RegistryType),
		VisualScale:  domain.VisualScale(m.VisualScale),
		Emotions:     emotions,
		Triggers:     triggers,
		Description:  m.Description,
	}
}

// Save inserts the mood with its nested rows in one transaction. A missing
// owner surfaces domain.ErrIntegrity.
func (s *MoodStorage) Save(ctx context.Context, mood *domain.Mood) (*domain.Mood, error) {
	start := time.Now()

	model := moodToModel(mood)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domain.ErrIntegrity
		}
		s.logger.Error("failed to save mood", "user_id", mood.UserID, "error", err)
		return nil, fmt.Errorf("save mood: %w", err)
	}

	s.logger.Info("mood saved",
		"mood_id", model.ID,
		"user_id", model.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return moodToEntity(model), nil
}

// ListByUser returns a page of the user's moods in insertion order, with
// nested records preloaded.
func (s *MoodStorage) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Mood, error) {
	start := time.Now()

	var models []MoodModel
	err := s.db.WithContext(ctx).
		Preload("Emotions").
		Preload("Triggers").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		s.logger.Error("failed to list moods", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list moods: %w", err)
	}

	moods := make([]domain.Mood, 0, len(models))
	for i := range models {
		moods = append(moods, *moodToEntity(&models[i]))
	}

	s.logger.Info("moods listed",
		"user_id", userID,
		"count", len(moods),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return moods, nil
}

// FindByID returns the mood with the given id owned by userID.
func (s *MoodStorage) FindByID(ctx context.Context, moodID, userID uuid.UUID) (*domain.Mood, error) {
	var model MoodModel
	err := s.db.WithContext(ctx).
		Preload("Emotions").
		Preload("Triggers").
		Where("id = ? AND user_id = ?", moodID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMoodNotFound
		}
		s.logger.Error("failed to find mood", "mood_id", moodID, "error", err)
		return nil, fmt.Errorf("find mood: %w", err)
	}
	return moodToEntity(&model), nil
}

// Update rewrites the mood's mutable columns and replaces its nested rows
// inside one transaction, so a constraint failure rolls back the whole
// aggregate.
func (s *MoodStorage) Update(ctx context.Context, mood *domain.Mood) (*domain.Mood, error) {
	start := time.Now()

	var updated *domain.Mood
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&MoodModel{}).
			Where("id = ? AND user_id = ?", mood.ID, mood.UserID).
			Updates(map[string]interface{}{
				"visual_scale": int(mood.VisualScale),
				"description":  mood.Description,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrMoodNotFound
		}

		if err := tx.Where("mood_id = ?", mood.ID).Delete(&EmotionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mood_id = ?", mood.ID).Delete(&TriggerModel{}).Error; err != nil {
			return err
		}

		model := moodToModel(mood)
		if len(model.Emotions) > 0 {
			if err := tx.Create(&model.Emotions).Error; err != nil {
				return err
			}
		}
		if len(model.Triggers) > 0 {
			if err := tx.Create(&model.Triggers).Error; err != nil {
				return err
			}
		}

		// re-read inside the transaction so the returned aggregate reflects
		// exactly what was committed
		var result MoodModel
		if err := tx.
			Preload("Emotions").
			Preload("Triggers").
			Where("id = ? AND user_id = ?", mood.ID, mood.UserID).
			First(&result).Error; err != nil {
			return err
		}
		updated = moodToEntity(&result)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrMoodNotFound) {
			return nil, domain.ErrMoodNotFound
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domain.ErrIntegrity
		}
		s.logger.Error("failed to update mood", "mood_id", mood.ID, "error", err)
		return nil, fmt.Errorf("update mood: %w", err)
	}

	s.logger.Info("mood updated",
		"mood_id", mood.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return updated, nil
}

// Delete removes the mood owned by userID; nested rows go with it via the
// cascade constraints.
func (s *MoodStorage) Delete(ctx context.Context, moodID, userID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", moodID, userID).
		Delete(&MoodModel{})
	if res.Error != nil {
		s.logger.Error("failed to delete mood", "mood_id", moodID, "error", res.Error)
		return fmt.Errorf("delete mood: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrMoodNotFound
	}

	s.logger.Info("mood deleted", "mood_id", moodID, "user_id", userID)
	return nil
}
