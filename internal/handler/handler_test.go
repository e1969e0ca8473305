package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sunriselabs/sunrise/internal/adapter/memory"
	"github.com/sunriselabs/sunrise/internal/auth"
	"github.com/sunriselabs/sunrise/internal/domain"
	"github.com/sunriselabs/sunrise/internal/usecase"
)

// newTestServer wires the full HTTP surface over the in-memory adapters.
func newTestServer(t *testing.T) (*httptest.Server, *memory.DB) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := memory.New()
	tokens := auth.NewTokenService("test-secret", time.Minute)
	users := usecase.NewUserUseCase(db, tokens, logger)
	moods := usecase.NewMoodUseCase(db.Moods(), logger)
	h := NewHandler(users, moods, logger)

	r := chi.NewRouter()
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(h.Authenticator)
		r.Get("/users", h.GetUsers)
		r.Put("/users/{userID}", h.UpdateUser)
		r.Route("/users/{userID}/moods", func(r chi.Router) {
			r.Get("/", h.ListMoods)
			r.Post("/", h.CreateMood)
			r.Put("/{moodID}", h.UpdateMood)
			r.Delete("/{moodID}", h.DeleteMood)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func doJSON(t *testing.T, method, rawURL, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, rawURL, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func signup(t *testing.T, srv *httptest.Server, username, email string) userResponse {
	t.Helper()
	resp := postJSON(t, srv.URL+"/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": "Passw0rd",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup: got status %d", resp.StatusCode)
	}
	var user userResponse
	decodeBody(t, resp, &user)
	return user
}

func login(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {"Passw0rd"}}
	resp, err := http.PostForm(srv.URL+"/auth/login", form)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: got status %d", resp.StatusCode)
	}
	var body tokenResponse
	decodeBody(t, resp, &body)
	if body.TokenType != "bearer" {
		t.Errorf("got token type %q, want bearer", body.TokenType)
	}
	return body.AccessToken
}

func TestSignup(t *testing.T) {
	srv, _ := newTestServer(t)

	user := signup(t, srv, "johndoe", "john@example.com")
	if user.Username != "johndoe" || user.Email != "john@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
	if user.IsAdmin || !user.IsActive {
		t.Errorf("new user should be active non-admin, got %+v", user)
	}

	// duplicates conflict
	resp := postJSON(t, srv.URL+"/auth/signup", map[string]string{
		"username": "johndoe",
		"email":    "john@example.com",
		"password": "Passw0rd",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate signup: got status %d, want 409", resp.StatusCode)
	}

	// weak passwords surface as a server error, not a 4xx
	resp = postJSON(t, srv.URL+"/auth/signup", map[string]string{
		"username": "janedoe",
		"email":    "jane@example.com",
		"password": "short",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("weak password: got status %d, want 500", resp.StatusCode)
	}

	// malformed json
	resp, err := http.Post(srv.URL+"/auth/signup", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad json: got status %d, want 400", resp.StatusCode)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv, _ := newTestServer(t)
	signup(t, srv, "johndoe", "john@example.com")

	tests := []struct {
		email, password string
	}{
		{"john@example.com", "WrongPass1"},
		{"nobody@example.com", "Passw0rd"},
	}
	for _, tt := range tests {
		form := url.Values{"username": {tt.email}, "password": {tt.password}}
		resp, err := http.PostForm(srv.URL+"/auth/login", form)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: got status %d, want 401", tt.email, resp.StatusCode)
		}
		if got := resp.Header.Get("WWW-Authenticate"); got != "Bearer" {
			t.Errorf("%s: got WWW-Authenticate %q, want Bearer", tt.email, got)
		}
	}
}

type stubUserUseCase struct {
	usecase.UserUseCase
	loginFn func(ctx context.Context, cmd usecase.LoginCommand) (string, error)
}

func (s *stubUserUseCase) Login(ctx context.Context, cmd usecase.LoginCommand) (string, error) {
	return s.loginFn(ctx, cmd)
}

func TestLogin_ChallengeHeaderOnlyOnAuthFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	postLogin := func(h *Handler) *httptest.ResponseRecorder {
		form := url.Values{"username": {"john@example.com"}, "password": {"Passw0rd"}}
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	// an internal failure must not carry the challenge header
	broken := &stubUserUseCase{loginFn: func(ctx context.Context, cmd usecase.LoginCommand) (string, error) {
		return "", errors.New("connection reset")
	}}
	rec := postLogin(NewHandler(broken, nil, logger))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "" {
		t.Errorf("500 response should not carry WWW-Authenticate, got %q", got)
	}

	// credential and inactive failures do
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInactiveUser, http.StatusForbidden},
	}
	for _, tt := range tests {
		stub := &stubUserUseCase{loginFn: func(ctx context.Context, cmd usecase.LoginCommand) (string, error) {
			return "", tt.err
		}}
		rec := postLogin(NewHandler(stub, nil, logger))
		if rec.Code != tt.want {
			t.Errorf("%v: got status %d, want %d", tt.err, rec.Code, tt.want)
		}
		if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Errorf("%v: got WWW-Authenticate %q, want Bearer", tt.err, got)
		}
	}
}

func TestAuthenticator_RejectsMissingAndBadTokens(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, token := range []string{"", "garbage"} {
		resp := doJSON(t, http.MethodGet, srv.URL+"/users", token, nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("token %q: got status %d, want 401", token, resp.StatusCode)
		}
	}
}

func TestGetUsers_AdminOnly(t *testing.T) {
	srv, db := newTestServer(t)
	user := signup(t, srv, "johndoe", "john@example.com")
	token := login(t, srv, "john@example.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/users", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-admin: got status %d, want 403", resp.StatusCode)
	}

	grantAdmin(t, db, user.Email)

	resp = doJSON(t, http.MethodGet, srv.URL+"/users", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin: got status %d, want 200", resp.StatusCode)
	}
	var body struct {
		Users []userResponse `json:"users"`
	}
	decodeBody(t, resp, &body)
	if len(body.Users) != 1 || body.Users[0].Username != "johndoe" {
		t.Errorf("unexpected listing %+v", body.Users)
	}
}

// grantAdmin flips the admin flag directly in the store.
func grantAdmin(t *testing.T, db *memory.DB, email string) {
	t.Helper()
	user, err := db.FindByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user.GrantAdmin()
	if _, err := db.Update(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	srv, _ := newTestServer(t)
	user := signup(t, srv, "johndoe", "john@example.com")
	signup(t, srv, "janedoe", "jane@example.com")
	token := login(t, srv, "john@example.com")
	otherToken := login(t, srv, "jane@example.com")

	// a stranger may not touch the account
	resp := doJSON(t, http.MethodPut, srv.URL+"/users/"+user.ID, otherToken, map[string]string{"username": "hijacked"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger: got status %d, want 403", resp.StatusCode)
	}

	// taking an existing username conflicts
	resp = doJSON(t, http.MethodPut, srv.URL+"/users/"+user.ID, token, map[string]string{"username": "janedoe"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("taken username: got status %d, want 409", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPut, srv.URL+"/users/"+user.ID, token, map[string]any{
		"username":   "johnny",
		"first_name": "John",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner: got status %d, want 200", resp.StatusCode)
	}
	var updated userResponse
	decodeBody(t, resp, &updated)
	if updated.Username != "johnny" || updated.FirstName != "John" {
		t.Errorf("unexpected user %+v", updated)
	}

	resp = doJSON(t, http.MethodPut, srv.URL+"/users/not-a-uuid", token, map[string]string{"username": "x"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad id: got status %d, want 400", resp.StatusCode)
	}
}

func TestMoodLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	user := signup(t, srv, "johndoe", "john@example.com")
	token := login(t, srv, "john@example.com")
	moodsURL := fmt.Sprintf("%s/users/%s/moods", srv.URL, user.ID)

	// create
	resp := doJSON(t, http.MethodPost, moodsURL, token, map[string]any{
		"registry_type": "daily",
		"visual_scale":  4,
		"associated_emotions": []map[string]any{
			{"name": "joy", "intensity": 8},
		},
		"triggers":    []map[string]any{{"name": "sunny morning"}},
		"description": "felt great",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201", resp.StatusCode)
	}
	var created moodResponse
	decodeBody(t, resp, &created)
	if created.UserID != user.ID {
		t.Errorf("mood owned by %s, want %s", created.UserID, user.ID)
	}

	// list exactly one
	resp = doJSON(t, http.MethodGet, moodsURL, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got status %d, want 200", resp.StatusCode)
	}
	var listing struct {
		Moods []moodResponse `json:"moods"`
	}
	decodeBody(t, resp, &listing)
	if len(listing.Moods) != 1 || listing.Moods[0].ID != created.ID {
		t.Fatalf("unexpected listing %+v", listing.Moods)
	}

	// update
	resp = doJSON(t, http.MethodPut, moodsURL+"/"+created.ID, token, map[string]any{
		"visual_scale": 5,
		"associated_emotions": []map[string]any{
			{"name": "surprise", "intensity": 3},
		},
		"description": "even better",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: got status %d, want 200", resp.StatusCode)
	}
	var updated moodResponse
	decodeBody(t, resp, &updated)
	if updated.VisualScale != 5 || updated.Description != "even better" {
		t.Errorf("unexpected mood %+v", updated)
	}
	if len(updated.Emotions) != 1 || updated.Emotions[0].Name != "surprise" {
		t.Errorf("unexpected emotions %+v", updated.Emotions)
	}

	// delete, then the mood is gone
	resp = doJSON(t, http.MethodDelete, moodsURL+"/"+created.ID, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: got status %d, want 204", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodDelete, moodsURL+"/"+created.ID, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete: got status %d, want 404", resp.StatusCode)
	}
}

func TestMoodValidationAndAccess(t *testing.T) {
	srv, db := newTestServer(t)
	owner := signup(t, srv, "owner", "owner@example.com")
	signup(t, srv, "stranger", "stranger@example.com")
	signup(t, srv, "admin", "admin@example.com")
	grantAdmin(t, db, "admin@example.com")

	ownerToken := login(t, srv, "owner@example.com")
	strangerToken := login(t, srv, "stranger@example.com")
	adminToken := login(t, srv, "admin@example.com")

	moodsURL := fmt.Sprintf("%s/users/%s/moods", srv.URL, owner.ID)

	// out-of-range intensity is a 400
	resp := doJSON(t, http.MethodPost, moodsURL, ownerToken, map[string]any{
		"registry_type": "daily",
		"visual_scale":  3,
		"associated_emotions": []map[string]any{
			{"name": "joy", "intensity": 11},
		},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad intensity: got status %d, want 400", resp.StatusCode)
	}

	// extra fields on a trigger fail loudly
	resp = doJSON(t, http.MethodPost, moodsURL, ownerToken, map[string]any{
		"registry_type": "daily",
		"visual_scale":  3,
		"triggers":      []map[string]any{{"name": "rain", "severity": 2}},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown trigger field: got status %d, want 400", resp.StatusCode)
	}

	// a stranger gets 403 on another user's journal
	resp = doJSON(t, http.MethodGet, moodsURL, strangerToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("stranger list: got status %d, want 403", resp.StatusCode)
	}

	// an admin may read it
	resp = doJSON(t, http.MethodGet, moodsURL, adminToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin list: got status %d, want 200", resp.StatusCode)
	}
}
