package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-tenant-auth/accounts"
)

var _ accounts.Store = (*FakeAccountRepo)(nil)

// FakeAccountRepo is an in-memory accounts.Store for tests. The uniqueness
// check and insert happen under one lock, matching the reject-on-conflict
// semantics of the persistent store.
type FakeAccountRepo struct {
	byID    map[string]*accounts.Account
	byEmail map[string]string // normalized email to account id
	lock    sync.RWMutex
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		byID:    make(map[string]*accounts.Account),
		byEmail: make(map[string]string),
	}
}

func (r *FakeAccountRepo) Create(ctx context.Context, email, password string) (*accounts.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := accounts.HashPassword(password)
	if err != nil {
		return nil, err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	normalized := accounts.NormalizeEmail(email)
	if _, ok := r.byEmail[normalized]; ok {
		return nil, accounts.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	account := &accounts.Account{
		ID:           uuid.New().String(),
		Email:        normalized,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[account.ID] = account
	r.byEmail[normalized] = account.ID
	return copyAccount(account), nil
}

func (r *FakeAccountRepo) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.byEmail[accounts.NormalizeEmail(email)]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return copyAccount(r.byID[id]), nil
}

func (r *FakeAccountRepo) GetByID(ctx context.Context, id string) (*accounts.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return copyAccount(account), nil
}

func (r *FakeAccountRepo) SetLocked(ctx context.Context, id string, locked bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return accounts.ErrNotFound
	}
	account.Locked = locked
	account.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes an account, for exercising not-found paths in tests.
func (r *FakeAccountRepo) Delete(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	account, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byEmail, account.Email)
	delete(r.byID, id)
}

func copyAccount(account *accounts.Account) *accounts.Account {
	copied := *account
	return &copied
}
