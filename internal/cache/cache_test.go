package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты кэша подписки поверх реального Redis (redis:7-alpine).
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/cache -v -count=1

func startRedis(t *testing.T) (EntitlementCache, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	cache, err := NewRedisCache(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "")
	require.NoError(t, err)

	return cache, func() {
		_ = cache.Close()
		_ = c.Terminate(context.Background())
	}
}

// TestBoolTo01 — кодирование флага в поле хэша.
func TestBoolTo01(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1", boolTo01(true))
	require.Equal(t, "0", boolTo01(false))
}

// TestNewRedisCache_BadURL — битый URL отклоняется до подключения.
func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache(context.Background(), "not-a-url", "")
	require.Error(t, err)
}

func TestIntegration_SetGetInvalidate(t *testing.T) {
	c, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()

	_, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)

	exp := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	chk := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, c.Set(ctx, "u1", &EntitlementEntry{Active: true, ExpiresAt: exp, CheckedAt: chk}, time.Minute))

	got, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Active)
	require.Equal(t, exp, got.ExpiresAt)
	require.Equal(t, chk, got.CheckedAt)

	require.NoError(t, c.Invalidate(ctx, "u1"))
	_, ok, err = c.Get(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIntegration_LifetimeEntry_ZeroExpiry(t *testing.T) {
	c, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u2", &EntitlementEntry{Active: true, CheckedAt: time.Now()}, time.Minute))

	got, ok, err := c.Get(ctx, "u2")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.ExpiresAt.IsZero())
}

func TestIntegration_TTLExpires(t *testing.T) {
	c, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u3", &EntitlementEntry{Active: false, CheckedAt: time.Now()}, time.Second))

	require.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "u3")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
