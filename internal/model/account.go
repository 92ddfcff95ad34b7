// Package model defines domain entities for the application.
package model

import "time"

// Account represents a registered user account.
// PasswordHash never leaves the storage boundary; it is excluded from
// every outward-facing representation via ToResponse.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

// AccountResponse is the public view of an Account.
// It carries everything except the password hash.
type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// ToResponse converts an Account to its public representation.
func (a *Account) ToResponse() AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
		IsActive:  a.IsActive,
	}
}

// Principal is the authenticated identity resolved from a verified token.
// It is constructed per-request by the auth middleware and never persisted.
type Principal struct {
	AccountID string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	IsActive  bool
}

// PrincipalFromAccount builds a Principal from a stored Account.
func PrincipalFromAccount(a *Account) *Principal {
	return &Principal{
		AccountID: a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
		IsActive:  a.IsActive,
	}
}

// ToResponse converts a Principal to the public account representation.
func (p *Principal) ToResponse() AccountResponse {
	return AccountResponse{
		ID:        p.AccountID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CreatedAt: p.CreatedAt,
		IsActive:  p.IsActive,
	}
}
