package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/staynest/staynest/internal/auth"
	"github.com/staynest/staynest/internal/handler/dto"
	"github.com/staynest/staynest/internal/service"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	logger *slog.Logger
	auth   *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger *slog.Logger, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   authService,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid request body"})
		return
	}

	if !isValidEmail(req.Email) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid email address"})
		return
	}

	result, err := h.auth.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.writeRegisterError(w, r, err)
		return
	}

	h.logger.Info("account registered",
		slog.String("account_id", result.Account.ID),
		slog.String("request_id", requestIDFrom(r)),
	)

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		User:        result.Account,
	})
}

// writeRegisterError maps a registration failure to its HTTP response.
func (h *AuthHandler) writeRegisterError(w http.ResponseWriter, r *http.Request, err error) {
	var weak *service.WeakPasswordError
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Detail: "Email already registered"})
	case errors.As(err, &weak):
		writeJSON(w, http.StatusBadRequest, dto.PasswordPolicyError{
			Detail: dto.PasswordPolicyDetail{
				Message: "Password validation failed",
				Errors:  weak.Violations,
			},
		})
	default:
		h.logger.Error("registration failed",
			slog.String("error", err.Error()),
			slog.String("request_id", requestIDFrom(r)),
		)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"})
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid request body"})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Detail: "Incorrect email or password"})
		case errors.Is(err, service.ErrInactiveAccount):
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Detail: "Inactive user"})
		default:
			h.logger.Error("login failed",
				slog.String("error", err.Error()),
				slog.String("request_id", requestIDFrom(r)),
			)
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		User:        result.Account,
	})
}

// Me handles GET /api/auth/me
// The auth middleware has already resolved the principal.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Detail: "Could not validate credentials"})
		return
	}

	writeJSON(w, http.StatusOK, principal.ToResponse())
}

// Logout handles POST /api/auth/logout
// Tokens are stateless; this is an acknowledgment only, no server-side
// invalidation happens.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

// isValidEmail performs a light syntactic check on the email address.
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
