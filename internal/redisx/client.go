// Package redisx opens go-redis clients shared by the session store and the
// job queue.
package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options describes a single Redis endpoint.
type Options struct {
	Addr     string
	Password string
	DB       int
}

const pingTimeout = 5 * time.Second

// Open creates a client and verifies the connection with PING.
func Open(ctx context.Context, o Options) (*redis.Client, error) {
	if o.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
