package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/arjun/bikewash/internal/middleware"
	"github.com/arjun/bikewash/internal/service"
)

// AuthHandler handles login, logout, and session introspection.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionManager
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionManager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type loginBody struct {
	// Credential is the identity-provider ID token.
	Credential string `json:"credential"`
}

type adminLoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	Principal interface{} `json:"principal"`
}

// Login handles POST /api/v1/auth/login
//
// Decodes the identity-provider token into a Principal and opens a
// session. A token that cannot be decoded is a login failure.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Credential == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "credential is required")
		return
	}

	principal, err := h.auth.DecodeIdentityToken(body.Credential)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "login_failed", "Sign-in failed. Please try again.")
		return
	}

	_, token, err := h.sessions.Open(principal)
	if err != nil {
		log.Printf("[handler] open session: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not open session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Principal: principal})
}

// AdminLogin handles POST /api/v1/auth/admin/login
//
// Checks the fixed admin credential pair.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var body adminLoginBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	principal, err := h.auth.AdminLogin(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid admin credentials")
			return
		}
		log.Printf("[handler] admin login: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "login failed")
		return
	}

	_, token, err := h.sessions.Open(principal)
	if err != nil {
		log.Printf("[handler] open session: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not open session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Principal: principal})
}

// Logout handles POST /api/v1/auth/logout
//
// Idempotent: logging out with a stale or missing token succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		h.sessions.Close(token)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Session handles GET /api/v1/auth/session
//
// Returns the current principal; guests get 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
		return
	}
	principal, ok := sess.Auth.Current()
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
		return
	}
	writeJSON(w, http.StatusOK, principal)
}
