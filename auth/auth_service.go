// Package auth orchestrates credential stores, password hashing and token
// issuance into the register / authenticate / profile operations. Requests
// arrive already rate-limited and tenant-resolved; results and typed errors
// are returned to the caller for wire serialization.
package auth

import (
	"context"

	"github.com/jrsteele09/go-tenant-auth/accounts"
	"github.com/jrsteele09/go-tenant-auth/token"
	"github.com/pkg/errors"
)

// StoreResolver resolves a tenant identifier to that tenant's isolated
// credential store. *tenants.Registry implements it.
type StoreResolver interface {
	Resolve(tenantID string) (accounts.Store, error)
}

// Service provides the tenant-scoped authentication operations.
type Service struct {
	resolver StoreResolver
	issuer   *token.Issuer
}

// New initializes a Service with its required dependencies.
func New(resolver StoreResolver, issuer *token.Issuer) (*Service, error) {
	if resolver == nil {
		return nil, errors.New("[auth.New] store resolver is required")
	}
	if issuer == nil {
		return nil, errors.New("[auth.New] token issuer is required")
	}
	return &Service{resolver: resolver, issuer: issuer}, nil
}

// Register creates a new account in the tenant's store and returns a
// session token for it. Fails with ErrInvalidInput for a too-short
// password, accounts.ErrDuplicateEmail for a taken email and
// tenants.ErrTenantUnavailable when the tenant's storage is unreachable.
func (s *Service) Register(ctx context.Context, tenantID, email, password string) (string, error) {
	if len(password) < accounts.MinPasswordLength {
		return "", errors.Wrap(ErrInvalidInput, "[Service.Register] password too short")
	}

	store, err := s.resolver.Resolve(tenantID)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Register] resolve store")
	}

	account, err := store.Create(ctx, email, password)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Register] create account")
	}

	signed, err := s.issuer.Issue(account.ID)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Register] issue token")
	}
	return signed, nil
}

// Authenticate checks the credentials and returns a session token. An
// unknown email and a wrong password fail with the identical
// ErrInvalidCredentials so callers cannot probe for account existence. A
// locked account fails with ErrAccountLocked before the password is
// checked. Success has no side effect on the store.
func (s *Service) Authenticate(ctx context.Context, tenantID, email, password string) (string, error) {
	store, err := s.resolver.Resolve(tenantID)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Authenticate] resolve store")
	}

	account, err := store.GetByEmail(ctx, email)
	if errors.Is(err, accounts.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", errors.Wrap(err, "[Service.Authenticate] get account")
	}

	if account.Locked {
		return "", ErrAccountLocked
	}

	if !accounts.CheckPasswordHash(password, account.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(account.ID)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Authenticate] issue token")
	}
	return signed, nil
}

// Profile returns the account view without the password hash. Fails with
// accounts.ErrNotFound when the account no longer exists.
func (s *Service) Profile(ctx context.Context, tenantID, accountID string) (*accounts.Profile, error) {
	store, err := s.resolver.Resolve(tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Profile] resolve store")
	}

	account, err := store.GetByID(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Profile] get account")
	}
	return account.Profile(), nil
}

// VerifyToken validates a bearer session token and returns its claims.
// Expired and malformed tokens fail with the token package's distinct
// error kinds.
func (s *Service) VerifyToken(raw string) (*token.Claims, error) {
	return s.issuer.Verify(raw)
}
