package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-tenant-auth/auth"
	"github.com/jrsteele09/go-tenant-auth/internal/config"
	"github.com/jrsteele09/go-tenant-auth/tenants"
	"github.com/jrsteele09/go-tenant-auth/token"
	"github.com/rs/zerolog/log"
)

// Server wires the authentication service to HTTP. Everything here is
// scaffolding around the auth package: tenant headers in, JSON envelopes
// out.
type Server struct {
	env     string // Environment (e.g., "DEV", "production")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	auth    *auth.Service
	limiter *ipRateLimiter
}

// New constructs the server, its registry, token issuer and auth service
// from validated configuration.
func New(cfg config.Config) (*Server, error) {
	registry, err := tenants.NewRegistry(tenants.SQLiteOpener(cfg.DataFolder))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create tenant registry: %w", err)
	}

	issuer, err := token.NewIssuer(token.Config{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL})
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token issuer: %w", err)
	}

	authService, err := auth.New(registry, issuer)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	s := &Server{
		env:     cfg.Env,
		mux:     http.NewServeMux(),
		config:  cfg,
		auth:    authService,
		limiter: newIPRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			log.Info().Str("path", parts[0]).Msg("route registered")
		}
	}
}
