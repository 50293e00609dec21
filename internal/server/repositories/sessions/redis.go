// Package sessions stores authentication sessions in Redis under
// auth_<token> keys.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	client redis.Cmdable
}

func NewRedisRepository(client redis.Cmdable) *RedisRepository {
	return &RedisRepository{client: client}
}

func key(token string) string {
	return common.SessionKeyPrefix + token
}

func (r *RedisRepository) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// GetUserID returns common.ErrorNotFound for unknown or expired tokens.
func (r *RedisRepository) GetUserID(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("redis error: %w", err)
	}
	return userID, nil
}

func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
