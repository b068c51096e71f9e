package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "app.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cf, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "8080", cf.ServerPort)
	require.Equal(t, "memory", cf.StoreDriver)
	require.Equal(t, 10*time.Minute, cf.ProductCacheTTL)
	require.Empty(t, cf.KafkaBrokerList())
}

func TestLoadConfig_MissingFileFallsBack(t *testing.T) {
	cf, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "info", cf.LogLevel)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeEnv(t, t.TempDir(), `
SERVER_PORT=9090
STORE_DRIVER=sqlite
PRODUCT_CACHE_TTL=30s
KAFKA_BROKERS=k1:9092, k2:9092
RATE_LIMIT_CAPACITY=10
RATE_LIMIT_RPS=2.5
`)
	t.Setenv("SERVER_PORT", "7070")

	cf, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "7070", cf.ServerPort)
	require.Equal(t, "sqlite", cf.StoreDriver)
	require.Equal(t, 30*time.Second, cf.ProductCacheTTL)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cf.KafkaBrokerList())
	require.Equal(t, 10, cf.RateLimitCapacity)
	require.Equal(t, 2.5, cf.RateLimitRPS)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoader_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeEnv(t, dir, "LOG_LEVEL=info\n")

	l, err := NewLoader(path)
	require.NoError(t, err)

	var level atomic.Value
	l.Watch(func(cf *Config) { level.Store(cf.LogLevel) }, nil)

	writeEnv(t, dir, "LOG_LEVEL=debug\n")

	require.Eventually(t, func() bool {
		v, _ := level.Load().(string)
		return v == "debug"
	}, 5*time.Second, 50*time.Millisecond)
	require.Equal(t, "debug", l.Get().LogLevel)
}
