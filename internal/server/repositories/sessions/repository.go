package sessions

import (
	"context"
	"time"
)

// Repository maps opaque session tokens to user ids.
type Repository interface {
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	GetUserID(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}
