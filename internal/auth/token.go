package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification errors.
var (
	// ErrTokenMalformed indicates the token encoding could not be parsed.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenBadSignature indicates the signature does not match.
	ErrTokenBadSignature = errors.New("token signature is invalid")
	// ErrTokenExpired indicates the embedded expiry has passed.
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenMissingSubject indicates the subject claim is absent.
	ErrTokenMissingSubject = errors.New("token has no subject")
)

// TokenService issues and verifies signed, expiring bearer tokens.
// Tokens are HS256 JWTs carrying {sub: accountID, exp: issue+TTL}.
// The signing key is process-wide state: loaded once at startup and held
// for the process lifetime. Rotating it invalidates all issued tokens.
type TokenService struct {
	key []byte
	ttl time.Duration
}

// NewTokenService creates a TokenService with the given signing key and
// default token lifetime.
func NewTokenService(key []byte, ttl time.Duration) *TokenService {
	return &TokenService{key: key, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for the given subject, expiring after the
// service's configured TTL. Every token carries an expiry; there are no
// non-expiring tokens.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns its subject.
// Any tampering with payload or signature fails deterministically with
// ErrTokenBadSignature or ErrTokenMalformed; an elapsed expiry fails with
// ErrTokenExpired; an absent subject claim fails with ErrTokenMissingSubject.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenBadSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid {
		return "", ErrTokenBadSignature
	}

	if claims.Subject == "" {
		return "", ErrTokenMissingSubject
	}
	return claims.Subject, nil
}
