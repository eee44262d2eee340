package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-tenant-auth/accounts"
	"github.com/jrsteele09/go-tenant-auth/auth"
	"github.com/jrsteele09/go-tenant-auth/tenants"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// credentialsRequest is the wire shape for register and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	}
}

// RegisterHandler creates a new account within the request's tenant and
// returns a session token.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := s.tenantID(w, r)
		if !ok {
			return
		}
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		signed, err := s.auth.Register(r.Context(), tenantID, req.Email, req.Password)
		if err != nil {
			s.respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, tokenResponse{Token: signed})
	}
}

// LoginHandler authenticates an account and returns a session token.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := s.tenantID(w, r)
		if !ok {
			return
		}
		req, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		signed, err := s.auth.Authenticate(r.Context(), tenantID, req.Email, req.Password)
		if err != nil {
			s.respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, tokenResponse{Token: signed})
	}
}

// MeHandler returns the current session's account profile. RequireToken
// has already verified the bearer token and stashed the account id.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := s.tenantID(w, r)
		if !ok {
			return
		}
		accountID, ok := AccountIDFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "missing session")
			return
		}

		profile, err := s.auth.Profile(r.Context(), tenantID, accountID)
		if err != nil {
			s.respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// ForgotPasswordHandler is a placeholder; the reset delivery flow is not
// implemented upstream and no token or email contract exists yet.
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, messageResponse{Message: "password reset process started (not implemented)"})
	}
}

// ResetPasswordHandler is a placeholder, matching ForgotPasswordHandler.
func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, messageResponse{Message: "password reset logic not implemented"})
	}
}

// tenantID pulls the upstream-resolved tenant identifier off the request.
// The value is trusted as-is; the registry rejects ids it cannot bind to
// storage.
func (s *Server) tenantID(w http.ResponseWriter, r *http.Request) (string, bool) {
	tenantID := strings.TrimSpace(r.Header.Get(tenantHeader))
	if tenantID == "" {
		respondError(w, http.StatusBadRequest, "missing "+tenantHeader+" header")
		return "", false
	}
	return tenantID, true
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return credentialsRequest{}, false
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return credentialsRequest{}, false
	}
	return req, true
}

// respondServiceError maps the auth error taxonomy to status codes. Typed
// client failures keep their message; anything else (storage failures,
// tenant unavailability) is logged in full and surfaced generically.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, accounts.ErrWeakPassword):
		respondError(w, http.StatusBadRequest, "email and 12+ character password are required")
	case errors.Is(err, accounts.ErrDuplicateEmail):
		respondError(w, http.StatusBadRequest, accounts.ErrDuplicateEmail.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrAccountLocked):
		respondError(w, http.StatusForbidden, auth.ErrAccountLocked.Error())
	case errors.Is(err, accounts.ErrNotFound):
		respondError(w, http.StatusNotFound, accounts.ErrNotFound.Error())
	case errors.Is(err, tenants.ErrTenantUnavailable):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("tenant storage unavailable")
		respondError(w, http.StatusInternalServerError, "service unavailable")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}
