package redis_client

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("password")

	client, err := NewRedisClient(context.Background(), mr.Addr(), WithPassword("password"), WithDB(0), WithPoolSize(4))
	require.NoError(t, err)
	defer client.Close()

	require.Equal(t, 4, client.Options().PoolSize)
}

func TestNewRedisClient_WrongPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("password")

	client, err := NewRedisClient(context.Background(), mr.Addr(), WithPassword("nope"))
	require.Error(t, err)
	require.Nil(t, client)
}
