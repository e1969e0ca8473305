package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sunriselabs/sunrise/internal/domain"
	"github.com/sunriselabs/sunrise/internal/usecase"
)

type moodListResponse struct {
	Moods []moodResponse `json:"moods"`
}

// ListMoods handles GET /users/{userID}/moods.
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	current, userID, ok := h.moodScope(w, r)
	if !ok {
		return
	}

	cmd := usecase.GetMoodsCommand{
		UserID: userID,
		Offset: intQuery(r, "offset", 0),
		Limit:  intQuery(r, "limit", 10),
	}

	moods, err := h.moods.ListMoods(r.Context(), cmd, current)
	if err != nil {
		h.respondMoodError(w, err)
		return
	}

	resp := moodListResponse{Moods: make([]moodResponse, 0, len(moods))}
	for i := range moods {
		resp.Moods = append(resp.Moods, newMoodResponse(&moods[i]))
	}
	respondWithJSON(w, http.StatusOK, resp, h.logger)
}

type moodRequest struct {
	RegistryType string           `json:"registry_type"`
	VisualScale  int              `json:"visual_scale"`
	Emotions     []emotionPayload `json:"associated_emotions"`
	Triggers     []triggerPayload `json:"triggers"`
	Description  string           `json:"description"`
}

// CreateMood handles POST /users/{userID}/moods. The created mood is owned
// by the authenticated caller regardless of the path segment.
func (h *Handler) CreateMood(w http.ResponseWriter, r *http.Request) {
	current, userID, ok := h.moodScope(w, r)
	if !ok {
		return
	}

	if !current.CanManage(userID) {
		respondWithError(w, http.StatusForbidden, domain.ErrPermissionDenied.Error(), h.logger)
		return
	}

	var req moodRequest
	if err := parseJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	cmd := usecase.RegisterMoodCommand{
		RegistryType: req.RegistryType,
		VisualScale:  req.VisualScale,
		Emotions:     toEmotionInputs(req.Emotions),
		Triggers:     toTriggerInputs(req.Triggers),
		Description:  req.Description,
	}

	mood, err := h.moods.RegisterMood(r.Context(), cmd, current)
	if err != nil {
		h.respondMoodError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newMoodResponse(mood), h.logger)
}

// UpdateMood handles PUT /users/{userID}/moods/{moodID}.
func (h *Handler) UpdateMood(w http.ResponseWriter, r *http.Request) {
	current, userID, ok := h.moodScope(w, r)
	if !ok {
		return
	}

	moodID, err := uuid.Parse(chi.URLParam(r, "moodID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid mood id", h.logger)
		return
	}

	var req moodRequest
	if err := parseJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	cmd := usecase.UpdateMoodCommand{
		MoodID:      moodID,
		UserID:      userID,
		VisualScale: req.VisualScale,
		Emotions:    toEmotionInputs(req.Emotions),
		Triggers:    toTriggerInputs(req.Triggers),
		Description: req.Description,
	}

	mood, err := h.moods.UpdateMood(r.Context(), cmd, current)
	if err != nil {
		h.respondMoodError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newMoodResponse(mood), h.logger)
}

// DeleteMood handles DELETE /users/{userID}/moods/{moodID}.
func (h *Handler) DeleteMood(w http.ResponseWriter, r *http.Request) {
	current, userID, ok := h.moodScope(w, r)
	if !ok {
		return
	}

	moodID, err := uuid.Parse(chi.URLParam(r, "moodID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid mood id", h.logger)
		return
	}

	cmd := usecase.DeleteMoodCommand{MoodID: moodID, UserID: userID}
	if err := h.moods.DeleteMood(r.Context(), cmd, current); err != nil {
		h.respondMoodError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// moodScope extracts the authenticated user and the path user id shared by
// every mood route.
func (h *Handler) moodScope(w http.ResponseWriter, r *http.Request) (*domain.User, uuid.UUID, bool) {
	current, ok := currentUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return nil, uuid.Nil, false
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id", h.logger)
		return nil, uuid.Nil, false
	}
	return current, userID, true
}

// respondMoodError maps domain errors from the mood use cases to status codes.
func (h *Handler) respondMoodError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		respondWithError(w, http.StatusForbidden, err.Error(), h.logger)
	case errors.Is(err, domain.ErrMoodNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
	default:
		h.logger.Error("mood operation failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
	}
}

func toEmotionInputs(payloads []emotionPayload) []usecase.EmotionInput {
	inputs := make([]usecase.EmotionInput, 0, len(payloads))
	for _, p := range payloads {
		inputs = append(inputs, usecase.EmotionInput{Name: p.Name, Intensity: p.Intensity})
	}
	return inputs
}

func toTriggerInputs(payloads []triggerPayload) []usecase.TriggerInput {
	inputs := make([]usecase.TriggerInput, 0, len(payloads))
	for _, p := range payloads {
		inputs = append(inputs, usecase.TriggerInput{Name: p.Name})
	}
	return inputs
}
