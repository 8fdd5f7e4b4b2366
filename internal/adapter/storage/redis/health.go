package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck reports whether Redis can still serve pending charge claims.
type HealthCheck struct {
	client goredis.Cmdable
}

// NewHealthCheck creates a Redis health checker.
func NewHealthCheck(client goredis.Cmdable) *HealthCheck {
	return &HealthCheck{client: client}
}

// Ping checks connectivity and that GETDEL is available, which fails after a
// failover onto an older replica.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return err
	}
	return checkGetDel(ctx, h.client)
}

func (h *HealthCheck) Name() string {
	return "redis"
}
