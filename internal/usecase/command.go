package usecase

import "github.com/google/uuid"

// CreateUserCommand carries the parameters for user signup.
type CreateUserCommand struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginCommand carries the credentials for authentication.
type LoginCommand struct {
	Email    string
	Password string
}

// GetUsersCommand carries pagination for the admin user listing.
type GetUsersCommand struct {
	Offset int
	Limit  int
}

// UpdateUserCommand carries a user update. Username is applied only when
// non-empty and different from the current value; nil name pointers leave
// the field unchanged.
type UpdateUserCommand struct {
	UserID    uuid.UUID
	Username  string
	FirstName *string
	LastName  *string
}

// EmotionInput is a raw associated-emotion payload, validated when the
// domain value object is built.
type EmotionInput struct {
	Name      string
	Intensity int
}

// TriggerInput is a raw emotional-trigger payload.
type TriggerInput struct {
	Name string
}

// RegisterMoodCommand carries a new mood entry. The owning user is always
// the authenticated caller, never a caller-supplied id.
type RegisterMoodCommand struct {
	RegistryType string
	VisualScale  int
	Emotions     []EmotionInput
	Triggers     []TriggerInput
	Description  string
}

// GetMoodsCommand carries the target user and pagination for a mood listing.
type GetMoodsCommand struct {
	UserID uuid.UUID
	Offset int
	Limit  int
}

// UpdateMoodCommand carries a full replacement of a mood's mutable fields.
type UpdateMoodCommand struct {
	MoodID      uuid.UUID
	UserID      uuid.UUID
	VisualScale int
	Emotions    []EmotionInput
	Triggers    []TriggerInput
	Description string
}

// DeleteMoodCommand identifies a mood by id and owner.
type DeleteMoodCommand struct {
	MoodID uuid.UUID
	UserID uuid.UUID
}
