package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	Capacity   int
	RatePS     float64       // tokens/秒
	RefillRate time.Duration // 補充時間間隔
}

func DefaultConfig() Config {
	return Config{
		Capacity:   100,
		RatePS:     50,
		RefillRate: 100 * time.Millisecond,
	}
}

/*
請使用 defer 呼叫 Stop()
*/
type TokenBucket struct {
	Config
	current      atomic.Int64
	lastRefilled atomic.Int64
	cancel       chan struct{}
	once         sync.Once
}

func NewTokenBucket(config *Config) *TokenBucket {
	t := &TokenBucket{
		cancel: make(chan struct{}),
	}
	if config != nil {
		t.Config = *config
	} else {
		t.Config = DefaultConfig()
	}
	if t.RefillRate <= 0 {
		t.RefillRate = DefaultConfig().RefillRate
	}

	t.current.Store(int64(t.Capacity))
	t.lastRefilled.Store(time.Now().UnixNano())
	go t.background()
	return t
}

func (t *TokenBucket) Allow() bool {
	for {
		current := t.current.Load()
		if current <= 0 {
			return false
		}
		if t.current.CompareAndSwap(current, current-1) {
			return true
		}
	}
}

// countNewTokens 回傳補充後的 token 數與實際被換算成 token 的時間點
func (t *TokenBucket) countNewTokens(current int64, now int64) (int64, int64) {
	lastUpdate := t.lastRefilled.Load()
	elapsed := time.Duration(now - lastUpdate)
	tokenToAdd := int64(elapsed.Seconds() * t.RatePS)
	if tokenToAdd <= 0 {
		return current, lastUpdate
	}
	newTokens := current + tokenToAdd
	if newTokens > int64(t.Capacity) {
		newTokens = int64(t.Capacity)
	}
	return newTokens, now
}

func (t *TokenBucket) background() {
	ticker := time.NewTicker(t.RefillRate)
	defer ticker.Stop()

	for {
		select {
		case <-t.cancel:
			return
		case <-ticker.C:
			for {
				now := time.Now().UnixNano()
				current := t.current.Load()
				newTokens, refilledAt := t.countNewTokens(current, now)
				if t.current.CompareAndSwap(current, newTokens) {
					t.lastRefilled.Store(refilledAt)
					break
				}
			}
		}
	}
}

func (t *TokenBucket) Stop() {
	t.once.Do(func() {
		close(t.cancel)
	})
}
