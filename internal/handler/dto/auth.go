// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/staynest/staynest/internal/model"

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents a successful registration or login.
type TokenResponse struct {
	AccessToken string                `json:"access_token"`
	TokenType   string                `json:"token_type"`
	User        model.AccountResponse `json:"user"`
}

// ErrorResponse carries a simple error detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// PasswordPolicyError carries the full list of password policy violations.
type PasswordPolicyError struct {
	Detail PasswordPolicyDetail `json:"detail"`
}

// PasswordPolicyDetail is the body of a failed password validation.
type PasswordPolicyDetail struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// MessageResponse carries an informational message.
type MessageResponse struct {
	Message string `json:"message"`
}
