// Package storage implements the repository ports over PostgreSQL via GORM,
// translating between persisted rows and domain entities.
package storage

import (
	"time"

	"github.com/google/uuid"
)

// UserModel corresponds to the 'users' table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	FirstName string
	LastName  string
	IsAdmin   bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Moods []MoodModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string {
	return "users"
}

// MoodModel corresponds to the 'moods' table.
type MoodModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	RegistryType string    `gorm:"not null"`
	VisualScale  int       `gorm:"not null"`
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Emotions []EmotionModel `gorm:"foreignKey:MoodID;constraint:OnDelete:CASCADE"`
	Triggers []TriggerModel `gorm:"foreignKey:MoodID;constraint:OnDelete:CASCADE"`
}

func (MoodModel) TableName() string {
	return "moods"
}

// EmotionModel corresponds to the 'associated_emotions' table.
type EmotionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	MoodID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Intensity int       `gorm:"not null"`
	CreatedAt time.Time
}

func (EmotionModel) TableName() string {
	return "associated_emotions"
}

// TriggerModel corresponds to the 'emotional_triggers' table.
type TriggerModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	MoodID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
}

func (TriggerModel) TableName() string {
	return "emotional_triggers"
}
