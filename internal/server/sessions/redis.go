package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys inside the shared Redis instance.
const keyPrefix = "auth_"

// RedisStore keeps token -> user id mappings in Redis, relying on key TTL
// as the only expiry mechanism. All operations are single-key and atomic,
// so no cross-token coordination is needed.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Issue(ctx context.Context, userID string) (string, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", fmt.Errorf("%w: token generation: %v", common.ErrorInternal, err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: session write: %v", common.ErrorTransientStorage, err)
	}

	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("%w: session read: %v", common.ErrorTransientStorage, err)
	}
	return userID, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("%w: session delete: %v", common.ErrorTransientStorage, err)
	}
	return n > 0, nil
}
