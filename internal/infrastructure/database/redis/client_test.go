package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalLens/internal/config"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/LegalLens/pkg/errors"
)

func newMiniClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewClient_Connects(t *testing.T) {
	c, _ := newMiniClient(t)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestNewClient_ConnectionFailed(t *testing.T) {
	c, err := NewClient(config.RedisConfig{Addr: "127.0.0.1:1"}, nil)
	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeServiceUnavailable))
}

func TestClient_Commands(t *testing.T) {
	c, _ := newMiniClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "foo", "bar", 0).Err())
	v, err := c.Get(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, "bar", v)

	n, err := c.Exists(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Del(ctx, "foo").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestClient_Close(t *testing.T) {
	c, _ := newMiniClient(t)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "second close is a no-op")

	ctx := context.Background()
	assert.Equal(t, ErrClientClosed, c.Get(ctx, "foo").Err())
	assert.Equal(t, ErrClientClosed, c.Set(ctx, "foo", "x", 0).Err())
	assert.Equal(t, ErrClientClosed, c.Del(ctx, "foo").Err())
	assert.Equal(t, ErrClientClosed, c.Exists(ctx, "foo").Err())
	assert.Equal(t, ErrClientClosed, c.Scan(ctx, 0, "*", 10).Err())
	assert.Equal(t, ErrClientClosed, c.Ping(ctx))
}
