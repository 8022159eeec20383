package infra

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
)

type memAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // id -> account
	byPhone  map[string]string          // phone -> id
	byEmail  map[string]string          // email -> id
}

// NewMemAccountRepo backs the auth module without Postgres; used by tests
// and the storage-less dev mode.
func NewMemAccountRepo() domain.AccountRepo {
	return &memAccountRepo{
		accounts: make(map[string]*domain.Account),
		byPhone:  make(map[string]string),
		byEmail:  make(map[string]string),
	}
}

func (r *memAccountRepo) Create(_ context.Context, p domain.CreateAccountParams) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(p.Email)
	if _, ok := r.byPhone[p.Phone]; ok {
		return nil, domain.ErrDuplicateContact
	}
	if _, ok := r.byEmail[email]; ok {
		return nil, domain.ErrDuplicateContact
	}
	otp := p.OTP
	exp := p.OTPExpiresAt
	a := &domain.Account{
		ID:           uuid.New().String(),
		Name:         p.Name,
		Email:        email,
		Phone:        p.Phone,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		District:     p.District,
		OTP:          &otp,
		OTPExpiresAt: &exp,
		CreatedAt:    time.Now().UTC(),
	}
	r.accounts[a.ID] = a
	r.byPhone[a.Phone] = a.ID
	r.byEmail[a.Email] = a.ID
	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) GetByPhone(_ context.Context, phone string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPhone[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r.accounts[id]
	return &cp, nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) UpdateVerification(_ context.Context, phone string, verified bool, otp *string, expiresAt *time.Time) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPhone[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a := r.accounts[id]
	a.Verified = verified
	a.OTP = otp
	a.OTPExpiresAt = expiresAt
	a.OTPAttempts = 0
	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) IncrementOTPAttempts(_ context.Context, phone string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPhone[phone]
	if !ok {
		return 0, domain.ErrNotFound
	}
	a := r.accounts[id]
	a.OTPAttempts++
	return a.OTPAttempts, nil
}
