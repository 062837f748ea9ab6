// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/httputil"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/security"
)

type ctxKey string

const userKey ctxKey = "user"

// UserProvider loads the account behind a token subject.
type UserProvider interface {
	// GetByEmail fetches a user by email.
	GetByEmail(ctx context.Context, email string) (models.User, bool, error)
}

// Authenticator resolves the calling account from a bearer token and
// gates protected routes. Admin checks read the stored account record,
// never the token claims, so a revoked promotion takes effect on the
// next request.
type Authenticator struct {
	tokens *security.TokenManager
	users  UserProvider
}

// NewAuthenticator constructs an Authenticator from a token manager
// and a user lookup.
func NewAuthenticator(tokens *security.TokenManager, users UserProvider) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// ExtractToken pulls the credential out of a request. Sources are
// consulted in order: the Authorization header (with or without a
// "Bearer" prefix), the X-Token header, then a "token" query
// parameter. A present Authorization header is authoritative; when it
// is malformed the fallback sources are not consulted.
func ExtractToken(r *http.Request) (string, bool) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.Fields(auth)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], true
		}
		if len(parts) == 1 {
			return parts[0], true
		}
		return "", false
	}
	if token := r.Header.Get("X-Token"); token != "" {
		return token, true
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, true
	}
	return "", false
}

// authenticate resolves the request's token to an account.
func (a *Authenticator) authenticate(r *http.Request) (models.User, error) {
	token, ok := ExtractToken(r)
	if !ok {
		return models.User{}, apperrors.Unauthenticated("Not authenticated")
	}
	claims, err := a.tokens.Validate(token)
	if err != nil {
		return models.User{}, apperrors.Unauthenticated("Could not validate credentials")
	}
	user, found, err := a.users.GetByEmail(r.Context(), claims.Subject)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, apperrors.Unauthenticated("Could not validate credentials")
	}
	return user, nil
}

// RequireUser admits any authenticated account and stores it in the
// request context for handlers to read via UserFromContext.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin admits only accounts whose stored record carries the
// admin flag. A token minted with an admin claim does not help once
// the account has been demoted.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if !user.IsAdmin {
			httputil.WriteError(w, apperrors.Forbidden("The user doesn't have enough privileges"))
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the account stored by RequireUser or
// RequireAdmin. The second result is false outside a guarded route.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
