// Package http provides the HTTP handlers, request decoding, and
// routing for the content management API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/httputil"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/security"
)

// validate checks struct tags on request payloads.
var validate = validator.New()

// AccountService defines the account operations required by the HTTP
// handlers.
type AccountService interface {
	// Register creates a new non-admin account.
	Register(ctx context.Context, email, password string) (models.User, error)
	// Authenticate verifies credentials and returns the account.
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	// Accounts performs the underlying account operations.
	Accounts AccountService
	// Tokens signs access tokens for authenticated accounts.
	Tokens *security.TokenManager
}

// CredentialsRequest is the JSON payload for registration and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// TokenResponse is the JSON payload returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// decodeValid decodes the request body into dst and applies its
// validation tags. Both failures surface as a 422.
func decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}

// Register handles account creation. It expects an email and a
// password of at least eight characters, and returns the created
// account without its credentials. Every account starts without admin
// rights; promotion is a separate admin operation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeValid(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, err := h.Accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login verifies the credentials and returns a bearer token carrying
// the account email as its subject.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeValid(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, err := h.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, err := h.Tokens.Issue(user.Email, user.IsAdmin)
	if err != nil {
		httputil.WriteError(w, apperrors.Internal(err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
