// Package auth provides credential hashing, password policy and token
// verification for the authentication service.
package auth

import "unicode"

// specialChars is the fixed set of accepted special characters.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// Policy violation messages, in check order.
const (
	msgTooShort  = "Password must be at least 8 characters long"
	msgNoUpper   = "Password must contain at least one uppercase letter"
	msgNoLower   = "Password must contain at least one lowercase letter"
	msgNoDigit   = "Password must contain at least one number"
	msgNoSpecial = "Password must contain at least one special character"
)

// PolicyResult is the outcome of a password strength check.
// Violations lists every failed rule in check order, not just the first.
type PolicyResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"errors"`
}

// ValidatePassword checks a candidate password against the strength policy.
// All rules are evaluated independently so the result reports the complete
// set of violations. Pure function, no I/O.
func ValidatePassword(candidate string) PolicyResult {
	var (
		hasUpper   bool
		hasLower   bool
		hasDigit   bool
		hasSpecial bool
	)

	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if isSpecial(r) {
			hasSpecial = true
		}
	}

	var violations []string
	if len(candidate) < 8 {
		violations = append(violations, msgTooShort)
	}
	if !hasUpper {
		violations = append(violations, msgNoUpper)
	}
	if !hasLower {
		violations = append(violations, msgNoLower)
	}
	if !hasDigit {
		violations = append(violations, msgNoDigit)
	}
	if !hasSpecial {
		violations = append(violations, msgNoSpecial)
	}

	return PolicyResult{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

func isSpecial(r rune) bool {
	for _, s := range specialChars {
		if r == s {
			return true
		}
	}
	return false
}
