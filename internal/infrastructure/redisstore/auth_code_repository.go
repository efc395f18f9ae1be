package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/martijn/resultsapi/internal/core/domain"
	"github.com/martijn/resultsapi/internal/core/repository"
)

const authCodeKeyPrefix = "resultsapi:authcode:"

// AuthCodeRepository keeps auth codes in Redis with a TTL equal to their
// remaining lifetime, so expiry is handled by Redis itself.
type AuthCodeRepository struct {
	redisClient *redis.Client
}

func NewAuthCodeRepository(redisClient *redis.Client) *AuthCodeRepository {
	return &AuthCodeRepository{redisClient: redisClient}
}

func (r *AuthCodeRepository) Create(ctx context.Context, authCode *domain.AuthCode) error {
	ttl := time.Until(authCode.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("auth code already expired")
	}

	data, err := json.Marshal(authCode)
	if err != nil {
		return fmt.Errorf("failed to marshal auth code: %w", err)
	}

	if err := r.redisClient.Set(ctx, authCodeKeyPrefix+authCode.Code, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store auth code: %w", err)
	}
	return nil
}

func (r *AuthCodeRepository) FindByCode(ctx context.Context, code string) (*domain.AuthCode, error) {
	data, err := r.redisClient.Get(ctx, authCodeKeyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("auth code: %w", repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth code: %w", err)
	}

	var authCode domain.AuthCode
	if err := json.Unmarshal(data, &authCode); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth code: %w", err)
	}
	return &authCode, nil
}

func (r *AuthCodeRepository) Delete(ctx context.Context, code string) error {
	n, err := r.redisClient.Del(ctx, authCodeKeyPrefix+code).Result()
	if err != nil {
		return fmt.Errorf("failed to delete auth code: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("auth code: %w", repository.ErrNotFound)
	}
	return nil
}

// DeleteExpired is a no-op: keys expire on their own.
func (r *AuthCodeRepository) DeleteExpired(ctx context.Context) error {
	return nil
}

var _ repository.AuthCodeRepository = (*AuthCodeRepository)(nil)
