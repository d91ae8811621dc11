package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/DrNytkenstien/secureauth/domain"
)

// MemoryOTPRepository implements domain.OTPRepository with an in-process map.
// Expired records are lazily deleted on read; DeleteExpired reclaims the rest.
type MemoryOTPRepository struct {
	mu      sync.Mutex
	records map[string]*domain.OTPRecord // keyed by normalized email
}

// NewMemoryOTPRepository creates an empty in-memory OTP repository
func NewMemoryOTPRepository() *MemoryOTPRepository {
	return &MemoryOTPRepository{records: make(map[string]*domain.OTPRecord)}
}

// Save implements domain.OTPRepository
func (r *MemoryOTPRepository) Save(ctx context.Context, record *domain.OTPRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *record
	r.records[record.Email] = &copied
	return nil
}

// FindLive implements domain.OTPRepository
func (r *MemoryOTPRepository) FindLive(ctx context.Context, email string) (*domain.OTPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[email]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	if !record.ExpiresAt.After(time.Now()) {
		delete(r.records, email)
		return nil, domain.ErrOTPNotFound
	}

	copied := *record
	return &copied, nil
}

// IncrementAttempts implements domain.OTPRepository
func (r *MemoryOTPRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[email]
	if !ok || !record.ExpiresAt.After(time.Now()) {
		return 0, domain.ErrOTPNotFound
	}

	record.Attempts++
	return record.Attempts, nil
}

// DeleteByEmail implements domain.OTPRepository
func (r *MemoryOTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, email)
	return nil
}

// DeleteExpired implements domain.OTPRepository
func (r *MemoryOTPRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, record := range r.records {
		if !record.ExpiresAt.After(now) {
			delete(r.records, email)
		}
	}
	return nil
}

// Count implements domain.OTPRepository
func (r *MemoryOTPRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

var _ domain.OTPRepository = (*MemoryOTPRepository)(nil)
