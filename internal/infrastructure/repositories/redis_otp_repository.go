package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DrNytkenstien/secureauth/domain"
)

const (
	otpPrefix         = "otp:"
	otpAttemptsPrefix = "otp:att:"
)

// RedisOTPRepository implements domain.OTPRepository using Redis. The record
// is stored as JSON under otp:<email> with a TTL matching its expiry, and the
// attempt counter lives in a separate key so increments stay atomic across
// concurrent verification attempts.
type RedisOTPRepository struct {
	client *redis.Client
}

// NewRedisOTPRepository creates a new Redis-backed OTP repository
func NewRedisOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

// Save implements domain.OTPRepository
func (r *RedisOTPRepository) Save(ctx context.Context, record *domain.OTPRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal otp record: %w", err)
	}

	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("otp record already expired")
	}

	if err := r.client.Set(ctx, otpPrefix+record.Email, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp record: %w", err)
	}

	if err := r.client.Set(ctx, otpAttemptsPrefix+record.Email, record.Attempts, ttl).Err(); err != nil {
		return fmt.Errorf("failed to initialize attempts counter: %w", err)
	}

	return nil
}

// FindLive implements domain.OTPRepository
func (r *RedisOTPRepository) FindLive(ctx context.Context, email string) (*domain.OTPRecord, error) {
	data, err := r.client.Get(ctx, otpPrefix+email).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}

	var record domain.OTPRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp record: %w", err)
	}

	// The key TTL tracks expiry, but double-check against the clock used at
	// creation so a lagging eviction never surfaces an expired record.
	if !record.ExpiresAt.After(time.Now()) {
		r.client.Del(ctx, otpPrefix+email, otpAttemptsPrefix+email)
		return nil, domain.ErrOTPNotFound
	}

	attempts, err := r.client.Get(ctx, otpAttemptsPrefix+email).Int()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read attempts counter: %w", err)
	}
	record.Attempts = attempts

	return &record, nil
}

// IncrementAttempts implements domain.OTPRepository
func (r *RedisOTPRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	exists, err := r.client.Exists(ctx, otpPrefix+email).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, domain.ErrOTPNotFound
	}

	attempts, err := r.client.Incr(ctx, otpAttemptsPrefix+email).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}

	return int(attempts), nil
}

// DeleteByEmail implements domain.OTPRepository
func (r *RedisOTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.client.Del(ctx, otpPrefix+email, otpAttemptsPrefix+email).Err()
}

// DeleteExpired implements domain.OTPRepository
func (r *RedisOTPRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	// Redis evicts keys via TTL, so there is nothing to reclaim here
	return nil
}

// Count implements domain.OTPRepository
func (r *RedisOTPRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, otpPrefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			if !strings.HasPrefix(key, otpAttemptsPrefix) {
				count++
			}
		}
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

var _ domain.OTPRepository = (*RedisOTPRepository)(nil)
