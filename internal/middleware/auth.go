package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/staynest/staynest/internal/auth"
	"github.com/staynest/staynest/internal/metrics"
	"github.com/staynest/staynest/internal/model"
	"github.com/staynest/staynest/internal/repository"
)

// TokenVerifier verifies a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AccountSource resolves account records by ID.
type AccountSource interface {
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
}

// PrincipalCache caches resolved principals keyed by a derived cache key.
type PrincipalCache interface {
	GetPrincipal(ctx context.Context, cacheKey string) (*model.Principal, error)
	SetPrincipal(ctx context.Context, cacheKey string, p *model.Principal) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  TokenVerifier
	Store   AccountSource
	Cache   PrincipalCache // optional; nil disables principal caching
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates bearer-token requests.
// It extracts the token from the Authorization header, verifies it, resolves
// the subject account and injects the resulting Principal into the request
// context. The token is always verified before the cache is consulted, so a
// cached principal can never outlive its token's expiry.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_credential"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "Could not validate credentials")
				return
			}

			subject, err := cfg.Tokens.Verify(token)
			if err != nil {
				recorder.IncTokenVerification(tokenOutcome(err))
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("error", err.Error()),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, "Could not validate credentials")
				return
			}
			recorder.IncTokenVerification(metrics.TokenValid)

			principal, cacheHit := lookupCachedPrincipal(r.Context(), cfg.Cache, subject)
			if cacheHit {
				recorder.IncAuthCacheHit()
			} else {
				recorder.IncAuthCacheMiss()

				account, err := cfg.Store.GetAccountByID(r.Context(), subject)
				if err != nil {
					if errors.Is(err, repository.ErrAccountNotFound) {
						cfg.Logger.Warn("authentication failed",
							slog.String("reason", "account_not_found"),
							slog.String("account_id", subject),
							slog.String("request_id", GetRequestID(r.Context())),
						)
						writeAuthError(w, "User not found")
						return
					}
					cfg.Logger.Error("database error during auth",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeAuthError(w, "Could not validate credentials")
					return
				}

				principal = model.PrincipalFromAccount(account)
				if cfg.Cache != nil {
					_ = cfg.Cache.SetPrincipal(r.Context(), auth.QuickHash(subject), principal)
				}
			}

			cfg.Logger.Info("authentication successful",
				slog.String("account_id", principal.AccountID),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.Bool("cache_hit", cacheHit),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// lookupCachedPrincipal consults the principal cache, if configured.
func lookupCachedPrincipal(ctx context.Context, cache PrincipalCache, subject string) (*model.Principal, bool) {
	if cache == nil {
		return nil, false
	}
	principal, _ := cache.GetPrincipal(ctx, auth.QuickHash(subject))
	if principal == nil {
		return nil, false
	}
	return principal, true
}

// tokenOutcome maps a verification error to a metrics outcome.
func tokenOutcome(err error) string {
	if errors.Is(err, auth.ErrTokenExpired) {
		return metrics.TokenExpired
	}
	return metrics.TokenInvalid
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Token failures all use the same message to prevent probing.
func writeAuthError(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"` + detail + `"}`))
}
