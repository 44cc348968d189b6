package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	ok, err := guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, ok, "second acquire for the same key must be rejected")

	ok, err = guard.Acquire(ctx, "session-2")
	require.NoError(t, err)
	assert.True(t, ok, "other keys are independent")

	require.NoError(t, guard.Release(ctx, "session-1"))

	ok, err = guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryGuard_Concurrent(t *testing.T) {
	ctx := context.Background()
	guard := NewMemoryGuard()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := guard.Acquire(ctx, "shared")
			if ok {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, acquired)
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisGuard_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	guard := NewRedisGuard(client, time.Minute)

	ok, err := guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists(redisGuardPrefix+"session-1"))
	assert.Equal(t, time.Minute, mr.TTL(redisGuardPrefix+"session-1"))

	ok, err = guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, guard.Release(ctx, "session-1"))
	assert.False(t, mr.Exists(redisGuardPrefix+"session-1"))

	ok, err = guard.Acquire(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisGuard_Expires(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	guard := NewRedisGuard(client, 30*time.Second)

	ok, err := guard.Acquire(ctx, "stuck")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(31 * time.Second)

	ok, err = guard.Acquire(ctx, "stuck")
	require.NoError(t, err)
	assert.True(t, ok, "an expired key can be acquired again")
}

func TestRedisGuard_Errors(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	guard := NewRedisGuard(client, time.Minute)

	mock.ExpectSetNX(redisGuardPrefix+"k", "1", time.Minute).SetErr(errors.New("connection refused"))
	ok, err := guard.Acquire(ctx, "k")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "acquire in-flight key")

	mock.ExpectDel(redisGuardPrefix + "k").SetErr(errors.New("connection reset"))
	err = guard.Release(ctx, "k")
	assert.ErrorContains(t, err, "release in-flight key")

	assert.NoError(t, mock.ExpectationsWereMet())
}
