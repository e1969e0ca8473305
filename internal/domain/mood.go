package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// RegistryType classifies a mood entry as a scheduled daily record or an
// ad hoc event record.
type RegistryType string

const (
	RegistryDaily RegistryType = "daily"
	RegistryEvent RegistryType = "event"
)

// ParseRegistryType validates and converts a raw registry type value.
func ParseRegistryType(s string) (RegistryType, error) {
	switch RegistryType(s) {
	case RegistryDaily, RegistryEvent:
		return RegistryType(s), nil
	}
	return "", newValidationError("registry_type", fmt.Sprintf("Registry type must be 'daily' or 'event', got %q", s))
}

// VisualScale is the ordinal 1..5 mood rating.
type VisualScale int

const (
	ScaleVerySad   VisualScale = 1
	ScaleSad       VisualScale = 2
	ScaleNeutral   VisualScale = 3
	ScaleHappy     VisualScale = 4
	ScaleVeryHappy VisualScale = 5
)

// ParseVisualScale validates and converts a raw scale value.
func ParseVisualScale(n int) (VisualScale, error) {
	if n < int(ScaleVerySad) || n > int(ScaleVeryHappy) {
		return 0, newValidationError("visual_scale", fmt.Sprintf("Visual scale must be between 1 and 5, got %d", n))
	}
	return VisualScale(n), nil
}

// EmotionName enumerates the emotions that can be attached to a mood.
type EmotionName string

const (
	EmotionAnger    EmotionName = "anger"
	EmotionFear     EmotionName = "fear"
	EmotionJoy      EmotionName = "joy"
	EmotionSadness  EmotionName = "sadness"
	EmotionSurprise EmotionName = "surprise"
)

const (
	MinIntensity = 1
	MaxIntensity = 10
)

// AssociatedEmotion is a value object nested inside a Mood: a named emotion
// with an intensity in [1,10].
type AssociatedEmotion struct {
	Name      EmotionName `json:"name"`
	Intensity int         `json:"intensity"`
}

// NewAssociatedEmotion validates the emotion name and intensity bounds.
func NewAssociatedEmotion(name string, intensity int) (AssociatedEmotion, error) {
	switch EmotionName(name) {
	case EmotionAnger, EmotionFear, EmotionJoy, EmotionSadness, EmotionSurprise:
	default:
		return AssociatedEmotion{}, newValidationError("name", fmt.Sprintf("Unknown emotion %q", name))
	}
	if intensity < MinIntensity || intensity > MaxIntensity {
		return AssociatedEmotion{}, newValidationError("intensity", fmt.Sprintf("Emotion intensity must be between %d and %d, got %d", MinIntensity, MaxIntensity, intensity))
	}
	return AssociatedEmotion{Name: EmotionName(name), Intensity: intensity}, nil
}

// EmotionalTrigger is a named trigger nested inside a Mood.
type EmotionalTrigger struct {
	Name string `json:"name"`
}

// Mood is a journal entry owned by exactly one user.
type Mood struct {
	ID           uuid.UUID           `json:"id"`
	UserID       uuid.UUID           `json:"user_id"`
	RegistryType RegistryType        `json:"registry_type"`
	VisualScale  VisualScale         `json:"visual_scale"`
	Emotions     []AssociatedEmotion `json:"associated_emotions"`
	Triggers     []EmotionalTrigger  `json:"triggers"`
	Description  string              `json:"description"`
}

// NewMood builds a mood entry with a generated id, validating the registry
// type and visual scale. Emotions are expected to have been built through
// NewAssociatedEmotion.
func NewMood(userID uuid.UUID, registryType string, visualScale int, emotions []AssociatedEmotion, triggers []EmotionalTrigger, description string) (*Mood, error) {
	rt, err := ParseRegistryType(registryType)
	if err != nil {
		return nil, err
	}
	vs, err := ParseVisualScale(visualScale)
	if err != nil {
		return nil, err
	}
	if triggers == nil {
		triggers = []EmotionalTrigger{}
	}
	if emotions == nil {
		emotions = []AssociatedEmotion{}
	}
	return &Mood{
		ID:           uuid.New(),
		UserID:       userID,
		RegistryType: rt,
		VisualScale:  vs,
		Emotions:     emotions,
		Triggers:     triggers,
		Description:  description,
	}, nil
}

// UpdateVisualScale re-runs the construction-time bounds check.
func (m *Mood) UpdateVisualScale(n int) error {
	vs, err := ParseVisualScale(n)
	if err != nil {
		return err
	}
	m.VisualScale = vs
	return nil
}

// UpdateEmotions replaces the emotion list.
func (m *Mood) UpdateEmotions(emotions []AssociatedEmotion) {
	if emotions == nil {
		emotions = []AssociatedEmotion{}
	}
	m.Emotions = emotions
}

// UpdateTriggers replaces the trigger list.
func (m *Mood) UpdateTriggers(triggers []EmotionalTrigger) {
	if triggers == nil {
		triggers = []EmotionalTrigger{}
	}
	m.Triggers = triggers
}

// UpdateDescription replaces the free-text description.
func (m *Mood) UpdateDescription(description string) {
	m.Description = description
}
