package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DrNytkenstien/secureauth/domain"
)

func newOTPRecord(email string, ttl time.Duration) *domain.OTPRecord {
	now := time.Now()
	return &domain.OTPRecord{
		ID:          "rec-" + email,
		Email:       email,
		Code:        "123456",
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
		MaxAttempts: 5,
	}
}

func TestMemoryOTPRepository_SaveAndFindLive(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx := context.Background()

	record := newOTPRecord("user@test.com", 10*time.Minute)
	require.NoError(t, repo.Save(ctx, record))

	got, err := repo.FindLive(ctx, "user@test.com")
	require.NoError(t, err)
	assert.Equal(t, record.Code, got.Code)
	assert.Equal(t, record.ID, got.ID)

	// Returned record is a copy: mutating it must not touch the store
	got.Attempts = 99
	again, err := repo.FindLive(ctx, "user@test.com")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Attempts)
}

func TestMemoryOTPRepository_FindLiveExpired(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx := context.Background()

	record := newOTPRecord("user@test.com", -time.Second)
	require.NoError(t, repo.Save(ctx, record))

	_, err := repo.FindLive(ctx, "user@test.com")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)

	// The read reclaims the expired record
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestMemoryOTPRepository_IncrementAttempts(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newOTPRecord("user@test.com", 10*time.Minute)))

	for want := 1; want <= 3; want++ {
		got, err := repo.IncrementAttempts(ctx, "user@test.com")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	record, err := repo.FindLive(ctx, "user@test.com")
	require.NoError(t, err)
	assert.Equal(t, 3, record.Attempts)

	_, err = repo.IncrementAttempts(ctx, "missing@test.com")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestMemoryOTPRepository_SaveResetsAttempts(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newOTPRecord("user@test.com", 10*time.Minute)))
	_, err := repo.IncrementAttempts(ctx, "user@test.com")
	require.NoError(t, err)

	fresh := newOTPRecord("user@test.com", 10*time.Minute)
	fresh.ID = "rec-2"
	fresh.Code = "654321"
	require.NoError(t, repo.Save(ctx, fresh))

	got, err := repo.FindLive(ctx, "user@test.com")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Attempts)
	assert.Equal(t, "654321", got.Code)
}

func TestMemoryOTPRepository_DeleteByEmail(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newOTPRecord("user@test.com", 10*time.Minute)))
	require.NoError(t, repo.DeleteByEmail(ctx, "user@test.com"))

	_, err := repo.FindLive(ctx, "user@test.com")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)

	// Deleting an absent email is a no-op
	assert.NoError(t, repo.DeleteByEmail(ctx, "missing@test.com"))
}

func TestMemoryOTPRepository_DeleteExpiredAndCount(t *testing.T) {
	repo := NewMemoryOTPRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newOTPRecord("stale@test.com", -time.Minute)))
	require.NoError(t, repo.Save(ctx, newOTPRecord("fresh@test.com", 10*time.Minute)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, repo.DeleteExpired(ctx, time.Now()))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = repo.FindLive(ctx, "fresh@test.com")
	assert.NoError(t, err)
}
