package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-tenant-auth/token"
)

// tenantHeader carries the tenant identifier resolved by the upstream
// gateway. The core trusts this value.
const tenantHeader = "X-Tenant-ID"

type contextKey string

const accountIDContextKey contextKey = "accountID"

// AccountIDFromContext returns the account id stashed by RequireToken.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountIDContextKey).(string)
	return accountID, ok && accountID != ""
}

// RequireToken verifies the bearer session token and attaches the account
// id to the request context. An expired token gets a distinct message from
// a malformed one so clients know to re-authenticate.
func (s *Server) RequireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := s.auth.VerifyToken(strings.TrimSpace(raw))
		switch {
		case errors.Is(err, token.ErrTokenExpired):
			respondError(w, http.StatusUnauthorized, "token expired")
			return
		case err != nil:
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), accountIDContextKey, claims.AccountID)
		next(w, r.WithContext(ctx))
	}
}
