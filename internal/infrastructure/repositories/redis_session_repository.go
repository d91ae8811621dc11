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
	sessionPrefix      = "session:"
	sessionEmailPrefix = "session:email:"
)

// RedisSessionRepository implements domain.SessionRepository using Redis.
// Each session is stored as JSON with a TTL, and a per-email set of session
// ids supports bulk revocation.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new Redis-backed session repository
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Create implements domain.SessionRepository
func (r *RedisSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := r.client.Set(ctx, sessionPrefix+session.ID, data, ttl).Err(); err != nil {
		return err
	}

	indexKey := sessionEmailPrefix + session.Email
	if err := r.client.SAdd(ctx, indexKey, session.ID).Err(); err != nil {
		return err
	}
	// Keep the index at least as long as its newest session
	return r.client.Expire(ctx, indexKey, ttl).Err()
}

// FindByID implements domain.SessionRepository
func (r *RedisSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.Expired(time.Now()) {
		r.client.Del(ctx, sessionPrefix+sessionID)
		r.client.SRem(ctx, sessionEmailPrefix+session.Email, sessionID)
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

// Delete implements domain.SessionRepository
func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	data, err := r.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.ErrSessionNotFound
		}
		return err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err == nil {
		r.client.SRem(ctx, sessionEmailPrefix+session.Email, sessionID)
	}

	removed, err := r.client.Del(ctx, sessionPrefix+sessionID).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteAllByEmail implements domain.SessionRepository
func (r *RedisSessionRepository) DeleteAllByEmail(ctx context.Context, email string) error {
	indexKey := sessionEmailPrefix + email
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionPrefix+id)
	}
	keys = append(keys, indexKey)

	return r.client.Del(ctx, keys...).Err()
}

// DeleteExpired implements domain.SessionRepository
func (r *RedisSessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	// Redis evicts keys via TTL, so there is nothing to reclaim here
	return nil
}

// Count implements domain.SessionRepository
func (r *RedisSessionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, sessionPrefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			if !strings.HasPrefix(key, sessionEmailPrefix) {
				count++
			}
		}
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

var _ domain.SessionRepository = (*RedisSessionRepository)(nil)
