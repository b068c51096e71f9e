package redis_client

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Option func(*redis.Options)

func WithPassword(password string) Option {
	return func(o *redis.Options) {
		o.Password = password
	}
}

func WithDB(db int) Option {
	return func(o *redis.Options) {
		o.DB = db
	}
}

func WithPoolSize(poolSize int) Option {
	return func(o *redis.Options) {
		if poolSize > 0 {
			o.PoolSize = poolSize
		}
	}
}

// NewRedisClient 建立 client 並確認連線可用
func NewRedisClient(ctx context.Context, address string, options ...Option) (*redis.Client, error) {
	opts := &redis.Options{
		Addr: address,
	}
	for _, option := range options {
		option(opts)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", address, err)
	}
	return client, nil
}
