// Package auth issues and verifies the signed Bearer tokens that gate the
// API, and carries the authenticated user through the request context.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTokenTTL is the validity window for issued tokens.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the payload embedded in every token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenUser is what Verify extracts and what handlers read from context.
type TokenUser struct {
	ID    string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a "found?" flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing token
// verification. Only for handler tests.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	key    []byte
	issuer string
	ttl    time.Duration
	log    *zap.Logger
}

// NewTokenManager validates the signing key and constructs a TokenManager.
// A zero ttl falls back to DefaultTokenTTL.
func NewTokenManager(key, issuer string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if key == "" {
		return nil, fmt.Errorf("token key is empty; provide ≥32 random chars")
	}
	if len(key) < 32 {
		logger.Warn("token key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{key: []byte(key), issuer: issuer, ttl: ttl, log: logger}, nil
}

// Issue signs a token embedding the user's id, email, and role.
func (tm *TokenManager) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.key)
}

// Verify parses and validates a token string, returning its claims.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// LoadTokenUser injects the token's user into context when a valid Bearer
// token is presented. Requests without an Authorization header continue
// anonymously; RequireSignedIn decides whether that matters. A malformed or
// expired token is rejected immediately.
func (tm *TokenManager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			apierr.Unauthorized(w, "invalid Authorization header")
			return
		}
		claims, err := tm.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierr.Unauthorized(w, "invalid or expired token")
			return
		}
		u := &TokenUser{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadTokenUser).
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			apierr.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures there is a user in context with one of the allowed
// roles. Not signed in carries 401 semantics; wrong role carries 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apierr.Unauthorized(w, "authentication required")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				apierr.Forbidden(w, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
