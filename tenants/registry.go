// Package tenants maps tenant identifiers to their isolated credential
// stores. Each tenant gets exactly one store instance per process,
// created lazily on first access and cached for the process lifetime.
package tenants

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/jrsteele09/go-tenant-auth/accounts"
	"github.com/jrsteele09/go-tenant-auth/accounts/sqlitestore"
	"github.com/pkg/errors"
)

// StoreOpener constructs the credential store for a tenant. It is called at
// most once per tenant id for the life of a Registry.
type StoreOpener func(tenantID string) (accounts.Store, error)

// Registry caches one accounts.Store per tenant id.
type Registry struct {
	open   StoreOpener
	stores map[string]accounts.Store
	lock   sync.Mutex
}

// NewRegistry creates a Registry that opens stores with the given opener.
func NewRegistry(open StoreOpener) (*Registry, error) {
	if open == nil {
		return nil, errors.New("[NewRegistry] store opener is required")
	}
	return &Registry{
		open:   open,
		stores: make(map[string]accounts.Store),
	}, nil
}

// Resolve returns the store for tenantID, opening and caching it on first
// use. Concurrent first access from multiple callers yields exactly one
// store instance; losers of the race wait for the winner and reuse its
// store. Returns ErrTenantUnavailable when the tenant's storage cannot be
// opened, in which case nothing is cached and a later call retries.
func (r *Registry) Resolve(tenantID string) (accounts.Store, error) {
	if tenantID == "" {
		return nil, errors.Wrap(ErrTenantUnavailable, "[Registry.Resolve] empty tenant id")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if store, ok := r.stores[tenantID]; ok {
		return store, nil
	}

	store, err := r.open(tenantID)
	if err != nil {
		return nil, errors.Wrapf(ErrTenantUnavailable, "[Registry.Resolve] open store for tenant %q: %v", tenantID, err)
	}
	r.stores[tenantID] = store
	return store, nil
}

var tenantIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// SQLiteOpener returns a StoreOpener that keeps one SQLite database file
// per tenant under dataFolder. Tenant ids are restricted to a filename-safe
// alphabet so an id can never escape the data folder.
func SQLiteOpener(dataFolder string) StoreOpener {
	return func(tenantID string) (accounts.Store, error) {
		if !tenantIDPattern.MatchString(tenantID) {
			return nil, fmt.Errorf("invalid tenant id %q", tenantID)
		}
		return sqlitestore.Open(filepath.Join(dataFolder, tenantID+".db"))
	}
}
