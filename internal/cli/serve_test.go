package cli

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/config"
	"github.com/stretchr/testify/require"
)

func TestRunServe_GracefulShutdown(t *testing.T) {
	t.Setenv("SERVER_PORT", "0")
	t.Setenv("LOG_LEVEL", "error")
	loader, err := config.NewLoader("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, loader) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
