package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

// Runs against a live Redis when RESULTSAPI_REDIS_ADDR is set.
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("RESULTSAPI_REDIS_ADDR")
	if addr == "" {
		t.Skip("set RESULTSAPI_REDIS_ADDR to run the redis store tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestAuthCodeLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewAuthCodeRepository(newTestClient(t))

	code := domain.NewAuthCode(42, time.Minute)
	require.NoError(t, repo.Create(ctx, code))

	got, err := repo.FindByCode(ctx, code.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.WithinDuration(t, code.ExpiresAt, got.ExpiresAt, time.Millisecond)

	require.NoError(t, repo.DeleteExpired(ctx))
	require.NoError(t, repo.Delete(ctx, code.Code))

	_, err = repo.FindByCode(ctx, code.Code)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, code.Code), repository.ErrNotFound)
}

func TestCreateRejectsExpiredCode(t *testing.T) {
	repo := NewAuthCodeRepository(newTestClient(t))

	err := repo.Create(context.Background(), domain.NewAuthCode(1, -time.Second))
	assert.Error(t, err)
}
