package hold

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
)

// RedisStore marks a slot as "payment in progress" for a limited time so a
// second client is not sent to checkout for the same key.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func holdKey(key domain.Key) string {
	return fmt.Sprintf("hold:%s|%s", key.Date, key.Time)
}

// acquireScript takes a free key or refreshes one already owned by ARGV[1],
// in a single step so a refresh can never land on someone else's hold.
var acquireScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
	return 1
end
if current == ARGV[1] then
	redis.call("PEXPIRE", KEYS[1], ARGV[2])
	return 1
end
return 0
`)

// Acquire takes the hold for owner. It returns false when someone else holds
// the key. Re-acquiring an own hold refreshes its TTL.
func (s *RedisStore) Acquire(ctx context.Context, key domain.Key, owner string) (bool, error) {
	n, err := acquireScript.Run(ctx, s.client, []string{holdKey(key)}, owner, s.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("acquire hold: %w", err)
	}
	return n == 1, nil
}

func (s *RedisStore) Release(ctx context.Context, key domain.Key) error {
	if err := s.client.Del(ctx, holdKey(key)).Err(); err != nil {
		return fmt.Errorf("release hold: %w", err)
	}
	return nil
}

// NoopStore is used when no Redis is configured: every hold succeeds.
type NoopStore struct{}

func (NoopStore) Acquire(context.Context, domain.Key, string) (bool, error) { return true, nil }
func (NoopStore) Release(context.Context, domain.Key) error               { return nil }
