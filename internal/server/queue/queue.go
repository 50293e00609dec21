// Package queue is a reliable Redis list queue of thumbnail jobs.
//
// Producers LPUSH onto the queue list. A consumer atomically moves the oldest
// job onto <queue>:processing with BLMOVE and removes it from there once the
// job is finished. Jobs left in the processing list by a crashed consumer are
// put back with Recover, so delivery is at-least-once.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// ErrEmpty is returned by Dequeue when no job arrived within the block timeout.
var ErrEmpty = errors.New("queue empty")

const defaultBlock = time.Second

// Producer is the enqueue side used by the upload flow.
type Producer interface {
	Enqueue(ctx context.Context, job models.ThumbnailJob) error
}

// Delivery is a job taken from the queue and parked in the processing list
// until acknowledged.
type Delivery struct {
	raw string
}

// Job decodes the payload. A malformed payload must still be acknowledged.
func (d *Delivery) Job() (models.ThumbnailJob, error) {
	var job models.ThumbnailJob
	if err := json.Unmarshal([]byte(d.raw), &job); err != nil {
		return job, fmt.Errorf("malformed job payload: %w", err)
	}
	return job, nil
}

type RedisQueue struct {
	client     redis.Cmdable
	name       string
	processing string
	block      time.Duration
}

func NewRedisQueue(client redis.Cmdable, name string) *RedisQueue {
	return &RedisQueue{
		client:     client,
		name:       name,
		processing: name + ":processing",
		block:      defaultBlock,
	}
}

// WithBlock sets how long Dequeue waits for a job before returning ErrEmpty.
// Redis counts the timeout in whole seconds.
func (q *RedisQueue) WithBlock(d time.Duration) *RedisQueue {
	q.block = d
	return q
}

// Enqueue appends a job to the queue.
func (q *RedisQueue) Enqueue(ctx context.Context, job models.ThumbnailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := q.client.LPush(ctx, q.name, payload).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Dequeue blocks up to the block timeout for the next job. It returns ErrEmpty
// when nothing arrived, so callers can check ctx between polls.
func (q *RedisQueue) Dequeue(ctx context.Context) (*Delivery, error) {
	raw, err := q.client.BLMove(ctx, q.name, q.processing, "RIGHT", "LEFT", q.block).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}
	return &Delivery{raw: raw}, nil
}

// Ack removes a finished job from the processing list.
func (q *RedisQueue) Ack(ctx context.Context, d *Delivery) error {
	if err := q.client.LRem(ctx, q.processing, 1, d.raw).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Recover moves every job in the processing list back to the consuming end
// of the queue and returns how many were moved.
func (q *RedisQueue) Recover(ctx context.Context) (int, error) {
	n := 0
	for {
		err := q.client.LMove(ctx, q.processing, q.name, "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("redis error: %w", err)
		}
		n++
	}
}

// Len returns the number of pending jobs.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.name).Result()
}

func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
