package producer

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Producer 發送訊息到單一 topic
type Producer interface {
	// Produce 同步發送，會 block 到所有訊息寫入
	Produce(ctx context.Context, msgs []kafka.Message) error
	Close() error
}

// messageWriter 為 *kafka.Writer 的子集
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaProducer struct {
	writer messageWriter
	cfg    *Config
	closed atomic.Bool
}

func New(cfg *Config) (Producer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{}, // 同一訂單落在同一 partition
		BatchTimeout: cfg.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		WriteTimeout: cfg.WriteTimeout,
		MaxAttempts:  1, // 重試由 Produce 控制
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Str("component", "kafka_producer").Msgf(msg, args...)
		}),
		Compression: kafka.Snappy,
	}

	return newWithWriter(writer, cfg), nil
}

func newWithWriter(writer messageWriter, cfg *Config) *kafkaProducer {
	return &kafkaProducer{writer: writer, cfg: cfg}
}

func (p *kafkaProducer) Produce(ctx context.Context, msgs []kafka.Message) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if len(msgs) == 0 {
		return nil
	}

	var err error
	backoff := p.cfg.RetryBackoff
	for attempt := 0; attempt <= p.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			if waitErr := sleepCtx(ctx, backoff); waitErr != nil {
				return NewKafkaError("Produce", p.cfg.Topic, waitErr)
			}
			backoff = nextBackoff(backoff, p.cfg.MaxRetryBackoff)
		}
		if ctx.Err() != nil {
			return NewKafkaError("Produce", p.cfg.Topic, ctx.Err())
		}
		err = p.writer.WriteMessages(ctx, msgs...)
		if err == nil {
			return nil
		}
		if !IsTemporary(err) {
			break
		}
		log.Warn().Err(err).Str("topic", p.cfg.Topic).Int("attempt", attempt+1).Msg("produce failed, will retry")
	}

	return NewKafkaError("Produce", p.cfg.Topic, err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if limit > 0 && next > limit {
		return limit
	}
	return next
}

func (p *kafkaProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
