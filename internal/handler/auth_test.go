package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staynest/staynest/internal/auth"
	"github.com/staynest/staynest/internal/handler/dto"
	"github.com/staynest/staynest/internal/middleware"
	"github.com/staynest/staynest/internal/model"
	"github.com/staynest/staynest/internal/repository"
	"github.com/staynest/staynest/internal/service"
)

// memoryAccountStore is an in-memory AccountStore for handler tests.
type memoryAccountStore struct {
	mu      sync.Mutex
	byID    map[string]*model.Account
	byEmail map[string]*model.Account
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{
		byID:    make(map[string]*model.Account),
		byEmail: make(map[string]*model.Account),
	}
}

func (s *memoryAccountStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return account, nil
}

func (s *memoryAccountStore) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return account, nil
}

func (s *memoryAccountStore) InsertAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[account.Email]; exists {
		return repository.ErrEmailExists
	}
	copied := *account
	s.byID[account.ID] = &copied
	s.byEmail[account.Email] = &copied
	return nil
}

// testEnv wires the auth stack against an in-memory store, mirroring the
// production router layout for the auth routes.
type testEnv struct {
	router *chi.Mux
	store  *memoryAccountStore
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T, ttl time.Duration) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemoryAccountStore()
	tokens := auth.NewTokenService([]byte("test-signing-key"), ttl)
	authService := service.NewAuthService(store, tokens, nil)
	authHandler := NewAuthHandler(logger, authService)

	authCfg := middleware.AuthConfig{
		Logger: logger,
		Tokens: tokens,
		Store:  store,
	}

	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(middleware.Auth(authCfg)).Get("/me", authHandler.Me)
	})

	return &testEnv{router: r, store: store, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func registerAlice(t *testing.T, env *testEnv) dto.TokenResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Secur3Pass!",
		FirstName: "Alice",
		LastName:  "Smith",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var token dto.TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&token); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	return token
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)
	token := registerAlice(t, env)

	if token.AccessToken == "" {
		t.Error("expected an access token")
	}
	if token.TokenType != "bearer" {
		t.Errorf("expected token_type bearer, got %q", token.TokenType)
	}
	if token.User.Email != "alice@example.com" {
		t.Errorf("unexpected user email: %s", token.User.Email)
	}
}

func TestAuthHandler_Register_ResponseNeverContainsHash(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)

	rec := env.do(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Secur3Pass!",
		FirstName: "Alice",
		LastName:  "Smith",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "argon2") {
		t.Errorf("response must not expose credential material: %s", body)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)
	registerAlice(t, env)

	rec := env.do(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "alice@example.com",
		Password:  "Other3Pass!",
		FirstName: "Alice",
		LastName:  "Smith",
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Detail != "Email already registered" {
		t.Errorf("unexpected detail: %q", resp.Detail)
	}
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)

	rec := env.do(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "bob@example.com",
		Password:  "weak",
		FirstName: "Bob",
		LastName:  "Jones",
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.PasswordPolicyError
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode policy error: %v", err)
	}
	if resp.Detail.Message != "Password validation failed" {
		t.Errorf("unexpected message: %q", resp.Detail.Message)
	}
	if len(resp.Detail.Errors) == 0 {
		t.Error("expected violation list")
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)

	rec := env.do(t, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:     "not-an-email",
		Password:  "Secur3Pass!",
		FirstName: "X",
		LastName:  "Y",
	}, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)
	registerAlice(t, env)

	rec := env.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Secur3Pass!",
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var token dto.TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&token); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	if token.AccessToken == "" {
		t.Error("expected an access token")
	}
}

func TestAuthHandler_Login_WrongCredentialsUniform(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)
	registerAlice(t, env)

	wrongPass := env.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "WrongPass1!",
	}, nil)
	unknownEmail := env.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Secur3Pass!",
	}, nil)

	for name, rec := range map[string]*httptest.ResponseRecorder{"wrong password": wrongPass, "unknown email": unknownEmail} {
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, rec.Code)
		}
	}
	if wrongPass.Body.String() != unknownEmail.Body.String() {
		t.Error("wrong password and unknown email must return identical responses")
	}
}

func TestAuthHandler_Login_InactiveUser(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)
	token := registerAlice(t, env)

	env.store.mu.Lock()
	env.store.byID[token.User.ID].IsActive = false
	env.store.byEmail["alice@example.com"].IsActive = false
	env.store.mu.Unlock()

	rec := env.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Secur3Pass!",
	}, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Detail != "Inactive user" {
		t.Errorf("unexpected detail: %q", resp.Detail)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)
	token := registerAlice(t, env)

	rec := env.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token.AccessToken,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var user model.AccountResponse
	if err := json.NewDecoder(rec.Body).Decode(&user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.ID != token.User.ID {
		t.Errorf("expected account %s, got %s", token.User.ID, user.ID)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", user.Email)
	}
}

func TestAuthHandler_Me_ExpiredToken(t *testing.T) {
	t.Parallel()

	// Issue tokens that are already past their TTL.
	env := newTestEnv(t, -time.Second)
	token := registerAlice(t, env)

	rec := env.do(t, http.MethodGet, "/api/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token.AccessToken,
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token should yield 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_NoToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)

	rec := env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, 30*time.Minute)

	rec := env.do(t, http.MethodPost, "/api/auth/logout", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.MessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Successfully logged out" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}
