// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/staynest/internal/auth"
	"github.com/staynest/staynest/internal/metrics"
	"github.com/staynest/staynest/internal/model"
	"github.com/staynest/staynest/internal/repository"
)

// Service errors.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveAccount    = errors.New("inactive account")
)

// WeakPasswordError reports every policy rule the candidate password failed.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return "password validation failed"
}

// AccountStore is the persistence collaborator for account records.
// Implementations must enforce email uniqueness atomically: InsertAccount
// returns repository.ErrEmailExists when the email is already taken, even
// when a concurrent registration slipped past an earlier existence check.
type AccountStore interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
	InsertAccount(ctx context.Context, account *model.Account) error
}

// TokenResult is the outcome of a successful registration or login.
type TokenResult struct {
	AccessToken string
	TokenType   string
	Account     model.AccountResponse
}

// AuthService orchestrates registration and login.
type AuthService struct {
	store   AccountStore
	tokens  *auth.TokenService
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(store AccountStore, tokens *auth.TokenService, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		store:   store,
		tokens:  tokens,
		metrics: recorder,
	}
}

// Register creates a new account and issues an access token for it.
// Failures leave no partial state: the account is only persisted after the
// password has passed policy and been hashed, and the insert itself fails
// atomically on a concurrent duplicate email.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*TokenResult, error) {
	// Pre-check for an existing account. The insert below re-checks
	// atomically; this pass just gives the common case a clean error
	// without burning an argon2 hash.
	_, err := s.store.GetAccountByEmail(ctx, email)
	if err == nil {
		s.metrics.IncRegistration(metrics.RegistrationDuplicateEmail)
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		s.metrics.IncRegistration(metrics.RegistrationError)
		return nil, fmt.Errorf("lookup account by email: %w", err)
	}

	if result := auth.ValidatePassword(password); !result.Valid {
		s.metrics.IncRegistration(metrics.RegistrationWeakPassword)
		return nil, &WeakPasswordError{Violations: result.Violations}
	}

	hashStart := time.Now()
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.metrics.IncRegistration(metrics.RegistrationError)
		return nil, fmt.Errorf("hash password: %w", err)
	}
	s.metrics.ObserveHashDuration(time.Since(hashStart))

	account := &model.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}

	if err := s.store.InsertAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			// Lost the check-then-act race; same result as the pre-check.
			s.metrics.IncRegistration(metrics.RegistrationDuplicateEmail)
			return nil, ErrDuplicateEmail
		}
		s.metrics.IncRegistration(metrics.RegistrationError)
		return nil, fmt.Errorf("insert account: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		s.metrics.IncRegistration(metrics.RegistrationError)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncRegistration(metrics.RegistrationSuccess)
	return &TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		Account:     account.ToResponse(),
	}, nil
}

// Login verifies credentials and issues an access token.
// An unknown email and a wrong password yield the identical
// ErrInvalidCredentials so callers cannot tell which field was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.metrics.IncLogin(metrics.LoginInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		s.metrics.IncLogin(metrics.LoginError)
		return nil, fmt.Errorf("lookup account by email: %w", err)
	}

	match, err := auth.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidHash) || errors.Is(err, auth.ErrIncompatibleVersion) {
			// A stored hash we cannot read behaves like a wrong password.
			s.metrics.IncLogin(metrics.LoginInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		s.metrics.IncLogin(metrics.LoginError)
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		s.metrics.IncLogin(metrics.LoginInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		s.metrics.IncLogin(metrics.LoginInactiveAccount)
		return nil, ErrInactiveAccount
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		s.metrics.IncLogin(metrics.LoginError)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin(metrics.LoginSuccess)
	return &TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		Account:     account.ToResponse(),
	}, nil
}
