package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"point-wallet/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// deleteIfUnchangedScript deletes the key only if it still holds ARGV[1].
var deleteIfUnchangedScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// PendingChargeStore implements ports.PendingChargeStore using Redis.
// Entries live under domain.PendingChargeKey and expire with the given TTL.
type PendingChargeStore struct {
	client *goredis.Client
}

// NewPendingChargeStore creates a new Redis-backed pending charge store.
func NewPendingChargeStore(client *goredis.Client) *PendingChargeStore {
	return &PendingChargeStore{client: client}
}

// Set stores the member's pending charge, replacing any previous one.
func (s *PendingChargeStore) Set(ctx context.Context, charge *domain.PendingCharge, ttl time.Duration) error {
	data, err := json.Marshal(charge)
	if err != nil {
		return fmt.Errorf("marshal pending charge: %w", err)
	}
	if err := s.client.Set(ctx, domain.PendingChargeKey(charge.MemberID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis pending charge set: %w", err)
	}
	return nil
}

// GetAndDelete claims the member's pending charge with GETDEL, so that two
// concurrent approvals can never both observe it.
// Returns nil, nil if the key does not exist.
func (s *PendingChargeStore) GetAndDelete(ctx context.Context, memberID uuid.UUID) (*domain.PendingCharge, error) {
	data, err := s.client.GetDel(ctx, domain.PendingChargeKey(memberID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis pending charge getdel: %w", err)
	}

	var charge domain.PendingCharge
	if err := json.Unmarshal(data, &charge); err != nil {
		return nil, fmt.Errorf("unmarshal pending charge: %w", err)
	}
	return &charge, nil
}

// DeleteIfOrder drops the member's pending charge if its order id matches.
// The delete is skipped when the entry was replaced or claimed in between.
func (s *PendingChargeStore) DeleteIfOrder(ctx context.Context, memberID uuid.UUID, orderID string) (*domain.PendingCharge, error) {
	key := domain.PendingChargeKey(memberID)
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis pending charge get: %w", err)
	}

	var charge domain.PendingCharge
	if err := json.Unmarshal([]byte(data), &charge); err != nil {
		return nil, fmt.Errorf("unmarshal pending charge: %w", err)
	}
	if charge.OrderID != orderID {
		return nil, nil
	}

	deleted, err := deleteIfUnchangedScript.Run(ctx, s.client, []string{key}, data).Int()
	if err != nil {
		return nil, fmt.Errorf("redis pending charge delete: %w", err)
	}
	if deleted == 0 {
		return nil, nil
	}
	return &charge, nil
}
