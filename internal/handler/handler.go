// Package handler exposes the use cases over HTTP: request parsing, the
// bearer-token middleware, and the mapping from domain errors to status codes.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sunriselabs/sunrise/internal/domain"
	"github.com/sunriselabs/sunrise/internal/usecase"
)

// Handler carries the use cases behind the HTTP surface.
type Handler struct {
	users  usecase.UserUseCase
	moods  usecase.MoodUseCase
	logger *slog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(users usecase.UserUseCase, moods usecase.MoodUseCase, logger *slog.Logger) *Handler {
	return &Handler{users: users, moods: moods, logger: logger}
}

// respondWithJSON writes a JSON response body.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError writes a JSON error body.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"detail": message}, logger)
}

// parseJSON decodes a request body, rejecting unknown fields so payloads
// like a trigger with extra keys fail loudly.
func parseJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// intQuery reads an integer query parameter with a fallback for missing or
// unparsable values.
func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// userResponse is the public representation of a user.
type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  bool   `json:"is_active"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
	}
}

// emotionPayload mirrors domain.AssociatedEmotion on the wire.
type emotionPayload struct {
	Name      string `json:"name"`
	Intensity int    `json:"intensity"`
}

// triggerPayload mirrors domain.EmotionalTrigger on the wire. No extra
// fields are permitted on input.
type triggerPayload struct {
	Name string `json:"name"`
}

// moodResponse is the public representation of a mood entry.
type moodResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	RegistryType string           `json:"registry_type"`
	VisualScale  int              `json:"visual_scale"`
	Emotions     []emotionPayload `json:"associated_emotions"`
	Triggers     []triggerPayload `json:"triggers"`
	Description  string           `json:"description"`
}

func newMoodResponse(m *domain.Mood) moodResponse {
	emotions := make([]emotionPayload, 0, len(m.Emotions))
	for _, e := range m.Emotions {
		emotions = append(emotions, emotionPayload{Name: string(e.Name), Intensity: e.Intensity})
	}
	triggers := make([]triggerPayload, 0, len(m.Triggers))
	for _, t := range m.Triggers {
		triggers = append(triggers, triggerPayload{Name: t.Name})
	}
	return moodResponse{
		ID:           m.ID.String(),
		UserID:       m.UserID.String(),
		RegistryType: string(m.RegistryType),
		VisualScale:  int(m.VisualScale),
		Emotions:     emotions,
		Triggers:     triggers,
		Description:  m.Description,
	}
}
