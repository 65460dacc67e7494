package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedisService(t *testing.T) (*RedisService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisService(client, testLogger()), mr
}

func TestRedisService_SetAndGet(t *testing.T) {
	service, _ := setupRedisService(t)

	payload, err := service.Set(context.Background(), "greeting", map[string]string{"hello": "world"}, time.Minute)
	require.NoError(t, err)
	require.JSONEq(t, `{"hello":"world"}`, payload)

	cached, found := service.Get(context.Background(), "greeting")
	require.True(t, found)
	require.Equal(t, payload, cached)
}

func TestRedisService_GetMiss(t *testing.T) {
	service, _ := setupRedisService(t)

	_, found := service.Get(context.Background(), "missing")
	require.False(t, found)
}

func TestRedisService_TTLExpiry(t *testing.T) {
	service, mr := setupRedisService(t)

	_, err := service.Set(context.Background(), "short-lived", "value", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, found := service.Get(context.Background(), "short-lived")
	require.False(t, found)
}

// A failed store is logged, not surfaced; the encoded payload still comes
// back so callers can serve the response without the cache.
func TestRedisService_SetSurvivesStoreFailure(t *testing.T) {
	service, mr := setupRedisService(t)
	mr.Close()

	payload, err := service.Set(context.Background(), "greeting", map[string]string{"hello": "world"}, time.Minute)
	require.NoError(t, err)
	require.JSONEq(t, `{"hello":"world"}`, payload)
}

func TestRedisService_Delete(t *testing.T) {
	service, _ := setupRedisService(t)

	_, err := service.Set(context.Background(), "a", 1, time.Minute)
	require.NoError(t, err)
	_, err = service.Set(context.Background(), "b", 2, time.Minute)
	require.NoError(t, err)

	service.Delete(context.Background(), "a", "b")

	_, found := service.Get(context.Background(), "a")
	require.False(t, found)
	_, found = service.Get(context.Background(), "b")
	require.False(t, found)
}
