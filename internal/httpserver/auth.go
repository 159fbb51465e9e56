// internal/httpserver/auth.go
//
// API-key → JWT exchange guarding the expensive endpoints.
//   - POST /auth/token with {"apiKey": "..."} checks the key against a bcrypt
//     hash (API_KEY_HASH) and returns a short-lived HS256 token.
//   - requireAuth accepts "Authorization: Bearer <token>".
// With no hash configured, tokens cannot be issued and gated routes reject
// every token, whatever secret signed it.

package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds the token settings.
type AuthConfig struct {
	JWTSecret  string
	APIKeyHash string // bcrypt hash of the accepted API key
	TokenTTL   time.Duration
}

// HashAPIKey returns the bcrypt hash to store in API_KEY_HASH.
func HashAPIKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost) // cost=10
	return string(b), err
}

// checkAPIKey is a bcrypt verifier.
func checkAPIKey(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

type tokenReq struct {
	APIKey string `json:"apiKey" validate:"required"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges a valid API key for a JWT.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	a := s.opts.Auth
	if a.APIKeyHash == "" || a.JWTSecret == "" {
		writeError(w, http.StatusServiceUnavailable, "auth_disabled", "no API key configured")
		return
	}
	var req tokenReq
	if !decode(w, r, &req) {
		return
	}
	if !checkAPIKey(a.APIKeyHash, req.APIKey) {
		writeError(w, http.StatusUnauthorized, "Unauthorized", "invalid API key")
		return
	}
	tok, exp, err := s.signJWT("api")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// signJWT creates an HS256 JWT for subject with the configured expiry (default 24h).
func (s *Server) signJWT(subject string) (string, time.Time, error) {
	ttl := s.opts.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := timeNow()
	exp := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.Auth.JWTSecret))
	return ss, exp, err
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ctxSubjectKey is the context key type for the token subject.
type ctxSubjectKey struct{}

// requireAuth enforces a valid JWT and injects its subject into the request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" || s.opts.Auth.JWTSecret == "" || s.opts.Auth.APIKeyHash == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "bearer token required")
				return
			}
			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.opts.Auth.JWTSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(timeNow))
			if err != nil || !token.Valid || claims.Subject == "" {
				writeError(w, http.StatusUnauthorized, "Invalid token", "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSubjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
