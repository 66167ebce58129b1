package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arjun/bikewash/config"
	"github.com/arjun/bikewash/internal/model"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "admin123",
	}
}

// signIdentityToken builds a provider-style ID token. The signing key
// is irrelevant: the service decodes without verifying.
func signIdentityToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("some-provider-key"))
	if err != nil {
		t.Fatalf("sign identity token: %v", err)
	}
	return signed
}

func TestDecodeIdentityToken(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	token := signIdentityToken(t, jwt.MapClaims{
		"sub":   "u-123",
		"name":  "Alice",
		"email": "alice@example.com",
	})

	p, err := s.DecodeIdentityToken(token)
	if err != nil {
		t.Fatalf("DecodeIdentityToken: %v", err)
	}
	if p.ID != "u-123" || p.DisplayName != "Alice" || p.Email != "alice@example.com" {
		t.Errorf("principal = %+v", p)
	}
	if p.IsAdmin {
		t.Errorf("identity-provider principals must not be admin")
	}
}

func TestDecodeIdentityToken_Garbage(t *testing.T) {
	s := NewAuthService(testAuthConfig())
	if _, err := s.DecodeIdentityToken("not-a-jwt"); !errors.Is(err, ErrInvalidIdentityToken) {
		t.Errorf("err = %v, want ErrInvalidIdentityToken", err)
	}
}

func TestDecodeIdentityToken_MissingSubject(t *testing.T) {
	s := NewAuthService(testAuthConfig())
	token := signIdentityToken(t, jwt.MapClaims{"name": "Nobody"})
	if _, err := s.DecodeIdentityToken(token); !errors.Is(err, ErrInvalidIdentityToken) {
		t.Errorf("err = %v, want ErrInvalidIdentityToken", err)
	}
}

func TestAdminLogin(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	p, err := s.AdminLogin("admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if !p.IsAdmin || p.ID != "admin" {
		t.Errorf("principal = %+v", p)
	}

	if _, err := s.AdminLogin("admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := s.AdminLogin("someone@else.com", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	s := NewAuthService(testAuthConfig())

	p := model.Principal{ID: "u-1", DisplayName: "Alice", Email: "alice@example.com"}
	token, err := s.SignSessionToken(p, "sess-1")
	if err != nil {
		t.Fatalf("SignSessionToken: %v", err)
	}

	id, err := s.VerifySessionToken(token)
	if err != nil {
		t.Fatalf("VerifySessionToken: %v", err)
	}
	if id != "sess-1" {
		t.Errorf("session id = %q, want sess-1", id)
	}
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	signer := NewAuthService(testAuthConfig())
	token, _ := signer.SignSessionToken(model.Principal{ID: "u-1"}, "sess-1")

	cfg := testAuthConfig()
	cfg.SessionSecret = "different-secret"
	verifier := NewAuthService(cfg)

	if _, err := verifier.VerifySessionToken(token); err == nil {
		t.Errorf("token signed with another secret verified")
	}
}

func TestVerifySessionToken_Expired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.SessionTTL = -time.Minute
	s := NewAuthService(cfg)

	token, _ := s.SignSessionToken(model.Principal{ID: "u-1"}, "sess-1")
	if _, err := s.VerifySessionToken(token); err == nil {
		t.Errorf("expired token verified")
	}
}
