// Package memory implements the repository ports in memory, for unit tests
// and database-less development runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sunriselabs/sunrise/internal/core/ports"
	"github.com/sunriselabs/sunrise/internal/domain"
)

// DB implements the user and mood repository ports in memory. It enforces
// the same uniqueness and ownership semantics as the PostgreSQL adapter.
type DB struct {
	mu    sync.Mutex
	users []domain.User
	moods []domain.Mood
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ ports.UserRepository = (*DB)(nil)

// --- UserRepository ---

// Save adds a user, enforcing email and username uniqueness.
func (db *DB) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrAlreadyExists
		}
	}

	db.users = append(db.users, *user)
	saved := *user
	return &saved, nil
}

// FindByEmail returns the user with the given email.
func (db *DB) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByID returns the user with the given id.
func (db *DB) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindAll returns a page of users in insertion order.
func (db *DB) FindAll(ctx context.Context, offset, limit int) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if offset >= len(db.users) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(db.users) {
		end = len(db.users)
	}

	page := make([]domain.User, end-offset)
	copy(page, db.users[offset:end])
	return page, nil
}

// Update rewrites an existing user, re-checking uniqueness against others.
func (db *DB) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	idx := -1
	for i, u := range db.users {
		if u.ID == user.ID {
			idx = i
			continue
		}
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrAlreadyExists
		}
	}
	if idx == -1 {
		return nil, domain.ErrUserNotFound
	}

	db.users[idx] = *user
	updated := *user
	return &updated, nil
}

// --- MoodRepository ---

// MoodRepo adapts the shared DB to the mood repository port. It is a
// separate view because the user port already claims the Save/FindByID
// method names on DB.
type MoodRepo struct {
	db *DB
}

// Moods returns the mood repository view of the database.
func (db *DB) Moods() *MoodRepo {
	return &MoodRepo{db: db}
}

var _ ports.MoodRepository = (*MoodRepo)(nil)

// Save adds a mood, rejecting owners that do not exist (mirrors the
// foreign-key constraint of the relational adapter).
func (r *MoodRepo) Save(ctx context.Context, mood *domain.Mood) (*domain.Mood, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	ownerExists := false
	for _, u := range r.db.users {
		if u.ID == mood.UserID {
			ownerExists = true
			break
		}
	}
	if !ownerExists {
		return nil, domain.ErrIntegrity
	}

	r.db.moods = append(r.db.moods, *cloneMood(mood))
	return cloneMood(mood), nil
}

// ListByUser returns a page of the user's moods in insertion order.
func (r *MoodRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Mood, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var owned []domain.Mood
	for i := range r.db.moods {
		if r.db.moods[i].UserID == userID {
			owned = append(owned, *cloneMood(&r.db.moods[i]))
		}
	}

	if offset >= len(owned) {
		return []domain.Mood{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

// FindByID returns the mood with the given id owned by userID.
func (r *MoodRepo) FindByID(ctx context.Context, moodID, userID uuid.UUID) (*domain.Mood, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.moods {
		if r.db.moods[i].ID == moodID && r.db.moods[i].UserID == userID {
			return cloneMood(&r.db.moods[i]), nil
		}
	}
	return nil, domain.ErrMoodNotFound
}

// Update rewrites an existing mood.
func (r *MoodRepo) Update(ctx context.Context, mood *domain.Mood) (*domain.Mood, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.moods {
		if r.db.moods[i].ID == mood.ID && r.db.moods[i].UserID == mood.UserID {
			r.db.moods[i] = *cloneMood(mood)
			return cloneMood(mood), nil
		}
	}
	return nil, domain.ErrMoodNotFound
}

// Delete removes the mood with the given id owned by userID.
func (r *MoodRepo) Delete(ctx context.Context, moodID, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.moods {
		if r.db.moods[i].ID == moodID && r.db.moods[i].UserID == userID {
			r.db.moods = append(r.db.moods[:i], r.db.moods[i+1:]...)
			return nil
		}
	}
	return domain.ErrMoodNotFound
}

// DeleteByUser removes every mood owned by userID, mirroring the cascade
// behavior of the relational schema.
func (r *MoodRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	kept := r.db.moods[:0]
	for i := range r.db.moods {
		if r.db.moods[i].UserID != userID {
			kept = append(kept, r.db.moods[i])
		}
	}
	r.db.moods = kept
	return nil
}

func cloneMood(m *domain.Mood) *domain.Mood {
	out := *m
	out.Emotions = append([]domain.AssociatedEmotion(nil), m.Emotions...)
	out.Triggers = append([]domain.EmotionalTrigger(nil), m.Triggers...)
	if out.Emotions == nil {
		out.Emotions = []domain.AssociatedEmotion{}
	}
	if out.Triggers == nil {
		out.Triggers = []domain.EmotionalTrigger{}
	}
	return &out
}
