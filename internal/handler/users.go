package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sunriselabs/sunrise/internal/domain"
	"github.com/sunriselabs/sunrise/internal/usecase"
)

type userListResponse struct {
	Users []userResponse `json:"users"`
}

// GetUsers handles GET /users. Only active admins may list accounts.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	current, ok := currentUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}

	cmd := usecase.GetUsersCommand{
		Offset: intQuery(r, "offset", 0),
		Limit:  intQuery(r, "limit", 10),
	}

	users, err := h.users.GetUsers(r.Context(), cmd, current)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) || errors.Is(err, domain.ErrInactiveUser) {
			respondWithError(w, http.StatusForbidden, err.Error(), h.logger)
			return
		}
		h.logger.Error("list users failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal error", h.logger)
		return
	}

	resp := userListResponse{Users: make([]userResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, newUserResponse(&users[i]))
	}
	respondWithJSON(w, http.StatusOK, resp, h.logger)
}

type updateUserRequest struct {
	Username  string  `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateUser handles PUT /users/{userID}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	current, ok := currentUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated", h.logger)
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id", h.logger)
		return
	}

	var req updateUserRequest
	if err := parseJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	cmd := usecase.UpdateUserCommand{
		UserID:    userID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	user, err := h.users.UpdateUser(r.Context(), cmd, current)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPermissionDenied):
			respondWithError(w, http.StatusForbidden, err.Error(), h.logger)
		case errors.Is(err, domain.ErrUserNotFound):
			respondWithError(w, http.StatusNotFound, err.Error(), h.logger)
		case errors.Is(err, domain.ErrAlreadyExists):
			respondWithError(w, http.StatusConflict, err.Error(), h.logger)
		default:
			h.logger.Error("update user failed", "user_id", userID, "error", err)
			respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, newUserResponse(user), h.logger)
}
