package producer

import (
	"errors"
	"time"
)

var ErrInvalidateParameter = errors.New("invalidate parameter")

// Config kafka producer 設定
type Config struct {
	Brokers []string
	Topic   string

	RequiredAcks  int
	BatchTimeout  time.Duration
	RetryAttempts int
	// RetryBackoff 第一次重試前的等待時間，之後每次加倍
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration
	WriteTimeout    time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		RequiredAcks:    -1, // 等待所有副本確認
		BatchTimeout:    10 * time.Millisecond,
		RetryAttempts:   3,
		RetryBackoff:    100 * time.Millisecond,
		MaxRetryBackoff: time.Second,
		WriteTimeout:    5 * time.Second,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 || c.Topic == "" {
		return ErrInvalidateParameter
	}
	if c.RetryAttempts < 0 || c.RetryBackoff < 0 {
		return ErrInvalidateParameter
	}
	return nil
}
