package handler

import (
	"errors"
	"net/http"

	"github.com/sunriselabs/sunrise/internal/domain"
	"github.com/sunriselabs/sunrise/internal/usecase"
)

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup handles POST /auth/signup. Duplicate accounts surface as 409;
// every other domain failure, including field validation, falls through to
// 500 (see DESIGN.md on the signup error mapping).
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := parseJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	cmd := usecase.CreateUserCommand{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	user, err := h.users.CreateUser(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			respondWithError(w, http.StatusConflict, err.Error(), h.logger)
			return
		}
		h.logger.Error("signup failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, newUserResponse(user), h.logger)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login. Credentials arrive form-encoded; the
// username field carries the email.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid form data", h.logger)
		return
	}

	cmd := usecase.LoginCommand{
		Email:    r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	token, err := h.users.Login(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
			// Unknown email and wrong password are indistinguishable to the caller.
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondWithError(w, http.StatusUnauthorized, "Incorrect username or password", h.logger)
		case errors.Is(err, domain.ErrInactiveUser):
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondWithError(w, http.StatusForbidden, err.Error(), h.logger)
		default:
			h.logger.Error("login failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, "internal error", h.logger)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"}, h.logger)
}
