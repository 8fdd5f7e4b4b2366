package redis

import (
	"context"
	"errors"
	"fmt"

	"point-wallet/config"
	"point-wallet/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// probeKey is never written; GETDEL on it only proves the command exists.
const probeKey = "pending_charge:probe"

// NewClient creates the Redis client backing pending charges, refund locks
// and rate limits. The server must support GETDEL (Redis 6.2+), which the
// single-use pending charge claim relies on.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	log = logger.Component(log, "redis")
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	if err := checkGetDel(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Msg("Redis ready for pending charges and refund locks")

	return client, nil
}

func checkGetDel(ctx context.Context, client goredis.Cmdable) error {
	if err := client.GetDel(ctx, probeKey).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis GETDEL unsupported (pending charge claims need Redis 6.2+): %w", err)
	}
	return nil
}
