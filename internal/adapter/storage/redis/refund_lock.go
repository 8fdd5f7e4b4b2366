package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds the caller's token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RefundLock implements ports.RefundLock using Redis SET NX.
type RefundLock struct {
	client *goredis.Client
	prefix string
}

// NewRefundLock creates a new Redis-backed refund lock.
func NewRefundLock(client *goredis.Client) *RefundLock {
	return &RefundLock{
		client: client,
		prefix: "refund_lock:",
	}
}

// Acquire takes the lock for key if it is free. The returned token must be
// passed to Release. The lock expires by itself after ttl.
func (l *RefundLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	result, err := l.client.SetArgs(ctx, l.prefix+key, token, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			// Held by another refund
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis refund lock acquire: %w", err)
	}
	return token, result == "OK", nil
}

// Release frees the lock if it is still held with token.
func (l *RefundLock) Release(ctx context.Context, key string, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.prefix + key}, token).Err(); err != nil {
		return fmt.Errorf("redis refund lock release: %w", err)
	}
	return nil
}
