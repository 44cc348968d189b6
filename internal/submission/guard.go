// internal/submission/guard.go
package submission

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard admits one in-flight submission per key.
type Guard interface {
	// Acquire reports false when key already has a submission in flight.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// MemoryGuard keeps in-flight keys in process memory.
type MemoryGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{inFlight: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[key]; busy {
		return false, nil
	}
	g.inFlight[key] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, key)
	return nil
}

const redisGuardPrefix = "churn:inflight:"

// RedisGuard shares in-flight keys between console replicas. Entries expire after ttl so a
// crashed replica cannot hold a key forever.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, redisGuardPrefix+key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire in-flight key: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, redisGuardPrefix+key).Err(); err != nil {
		return fmt.Errorf("release in-flight key: %w", err)
	}
	return nil
}
