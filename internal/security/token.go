package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken means the token failed signature, algorithm, or
	// payload checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken means the token's expiry has elapsed.
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the payload embedded in every access token: the subject
// email, an admin flag, and an absolute expiry.
type Claims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256-signed access tokens. Tokens
// are self-contained and never persisted; there is no revocation, so a
// token stays valid for its full TTL regardless of account changes.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager returns a TokenManager signing with secret and using
// ttl as the default token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for subject with the default TTL.
func (m *TokenManager) Issue(subject string, isAdmin bool) (string, error) {
	return m.IssueWithTTL(subject, isAdmin, m.ttl)
}

// IssueWithTTL creates a signed token expiring at now + ttl.
func (m *TokenManager) IssueWithTTL(subject string, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the claims.
// It fails with ErrExpiredToken on elapsed expiry and ErrInvalidToken
// on a bad signature, wrong algorithm, malformed payload, or missing
// subject.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
