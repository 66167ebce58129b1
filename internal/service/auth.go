// Package service contains the application services that sit between
// the HTTP handlers and the in-memory stores / catalog repository.
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arjun/bikewash/config"
	"github.com/arjun/bikewash/internal/model"
)

// ─── Auth Errors ────────────────────────────────────────────

var (
	// ErrInvalidIdentityToken is returned when the identity-provider
	// token cannot be decoded into a principal.
	ErrInvalidIdentityToken = errors.New("invalid identity token")

	// ErrInvalidCredentials is returned on a failed admin login.
	ErrInvalidCredentials = errors.New("invalid admin credentials")
)

// ─── AuthService ────────────────────────────────────────────

// AuthService turns external credentials into Principals and signs the
// session tokens handed back to clients.
//
// Two login paths, matching the legacy site:
//   - an identity-provider token (Google-style JWT) decoded into
//     {id, name, email}; decode failure is a login failure;
//   - a fixed admin credential pair from config.
type AuthService struct {
	cfg config.AuthConfig
}

// NewAuthService creates an auth service from config.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{cfg: cfg}
}

// identityClaims is the subset of the provider's ID-token payload the
// service consumes.
type identityClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// DecodeIdentityToken extracts a Principal from a provider ID token.
//
// The token is decoded, not signature-verified: the provider's keys are
// not distributed to this service and the boundary contract is
// decode-or-fail, same as the legacy client. A missing subject claim is
// treated as a decode failure.
func (s *AuthService) DecodeIdentityToken(token string) (model.Principal, error) {
	var claims identityClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
	}
	if claims.Subject == "" {
		return model.Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidIdentityToken)
	}

	log.Printf("[auth] identity token decoded for %s", claims.Email)
	return model.Principal{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
		IsAdmin:     false,
	}, nil
}

// AdminLogin checks the fixed admin credential pair and returns the
// admin Principal on success.
func (s *AuthService) AdminLogin(email, password string) (model.Principal, error) {
	if email != s.cfg.AdminEmail || password != s.cfg.AdminPassword {
		return model.Principal{}, ErrInvalidCredentials
	}
	log.Printf("[auth] admin login for %s", email)
	return model.Principal{
		ID:          "admin",
		DisplayName: "Administrator",
		Email:       email,
		IsAdmin:     true,
	}, nil
}

// ─── Session tokens ─────────────────────────────────────────

// sessionClaims is the payload of tokens this service itself signs.
type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// SignSessionToken issues an HS256 session token for the principal.
// The jti identifies the server-side session entry.
func (s *AuthService) SignSessionToken(p model.Principal, sessionID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name:  p.DisplayName,
		Email: p.Email,
		Admin: p.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifySessionToken validates signature and expiry and returns the
// session id (jti) the token points at.
func (s *AuthService) VerifySessionToken(token string) (string, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return claims.ID, nil
}

// NewSessionID generates an opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
