package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/staynest/staynest/internal/auth"
	"github.com/staynest/staynest/internal/model"
	"github.com/staynest/staynest/internal/repository"
)

// fakeAccountStore is an in-memory AccountStore with the same uniqueness
// guarantee as the Postgres implementation.
type fakeAccountStore struct {
	mu       sync.Mutex
	byID     map[string]*model.Account
	byEmail  map[string]*model.Account
	insertFn func(account *model.Account) error // optional hook
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		byID:    make(map[string]*model.Account),
		byEmail: make(map[string]*model.Account),
	}
}

func (f *fakeAccountStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountStore) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountStore) InsertAccount(ctx context.Context, account *model.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertFn != nil {
		if err := f.insertFn(account); err != nil {
			return err
		}
	}
	if _, exists := f.byEmail[account.Email]; exists {
		return repository.ErrEmailExists
	}
	copied := *account
	f.byID[account.ID] = &copied
	f.byEmail[account.Email] = &copied
	return nil
}

func newTestService(store AccountStore) *AuthService {
	tokens := auth.NewTokenService([]byte("test-signing-key"), 30*time.Minute)
	return NewAuthService(store, tokens, nil)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)

	result, err := svc.Register(context.Background(), "alice@example.com", "Secur3Pass!", "Alice", "Smith")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if result.AccessToken == "" {
		t.Error("expected an access token")
	}
	if result.TokenType != "bearer" {
		t.Errorf("expected token type bearer, got %q", result.TokenType)
	}
	if result.Account.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", result.Account.Email)
	}
	if result.Account.ID == "" {
		t.Error("expected a generated account ID")
	}
	if !result.Account.IsActive {
		t.Error("new accounts should be active")
	}

	// The persisted record holds a hash, never the raw secret.
	stored, err := store.GetAccountByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("stored account not found: %v", err)
	}
	if stored.PasswordHash == "Secur3Pass!" || stored.PasswordHash == "" {
		t.Error("stored credential must be a hash of the secret")
	}
	match, err := auth.VerifyPassword("Secur3Pass!", stored.PasswordHash)
	if err != nil || !match {
		t.Errorf("stored hash should verify against the secret: match=%v err=%v", match, err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "Secur3Pass!", "Alice", "Smith"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, "alice@example.com", "Other3Pass!", "Alice", "Smith")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_DuplicateAtInsert(t *testing.T) {
	t.Parallel()

	// Simulates losing the check-then-act race: the pre-check passes but
	// the insert hits the unique constraint.
	store := newFakeAccountStore()
	store.insertFn = func(account *model.Account) error {
		return repository.ErrEmailExists
	}
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "alice@example.com", "Secur3Pass!", "Alice", "Smith")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("insert-time duplicate should map to ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)

	const attempts = 8
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(context.Background(), "race@example.com", "Secur3Pass!", "R", "Ace")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrDuplicateEmail):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("exactly one registration should succeed, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Errorf("expected %d duplicate failures, got %d", attempts-1, duplicates)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "bob@example.com", "weak", "Bob", "Jones")

	var weak *WeakPasswordError
	if !errors.As(err, &weak) {
		t.Fatalf("expected WeakPasswordError, got %v", err)
	}
	if len(weak.Violations) == 0 {
		t.Error("expected violations to be reported")
	}

	// Failure leaves no partial state.
	if _, err := store.GetAccountByEmail(context.Background(), "bob@example.com"); !errors.Is(err, repository.ErrAccountNotFound) {
		t.Error("no account should be persisted on policy failure")
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "Secur3Pass!", "Alice", "Smith"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login(ctx, "alice@example.com", "Secur3Pass!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("expected an access token")
	}
	if result.Account.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", result.Account.Email)
	}
}

func TestAuthService_Login_NoCredentialLeak(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "Secur3Pass!", "Alice", "Smith"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPassErr := svc.Login(ctx, "alice@example.com", "WrongPass1!")
	_, unknownErr := svc.Login(ctx, "nobody@example.com", "Secur3Pass!")

	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongPassErr.Error() != unknownErr.Error() {
		t.Error("error messages must not reveal which field was wrong")
	}
}

func TestAuthService_Login_UnreadableStoredHash(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)
	ctx := context.Background()

	account := &model.Account{
		ID:           "legacy-1",
		Email:        "legacy@example.com",
		PasswordHash: "$2b$12$not-an-argon2-hash",
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := store.InsertAccount(ctx, account); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	// A hash in an unknown format behaves like a wrong password, not a 500.
	_, err := svc.Login(ctx, "legacy@example.com", "Secur3Pass!")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	svc := newTestService(store)
	ctx := context.Background()

	result, err := svc.Register(ctx, "carol@example.com", "Secur3Pass!", "Carol", "King")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Deactivate directly in the store.
	store.mu.Lock()
	store.byEmail["carol@example.com"].IsActive = false
	store.byID[result.Account.ID].IsActive = false
	store.mu.Unlock()

	_, err = svc.Login(ctx, "carol@example.com", "Secur3Pass!")
	if !errors.Is(err, ErrInactiveAccount) {
		t.Errorf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeAccountStore()
	tokens := auth.NewTokenService([]byte("test-signing-key"), 30*time.Minute)
	svc := NewAuthService(store, tokens, nil)
	ctx := context.Background()

	result, err := svc.Register(ctx, "dave@example.com", "Secur3Pass!", "Dave", "Lee")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	subject, err := tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("issued token should verify: %v", err)
	}
	if subject != result.Account.ID {
		t.Errorf("token subject %q should be the account ID %q", subject, result.Account.ID)
	}
}
