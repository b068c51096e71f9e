package producer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("producer is closed")

// KafkaError 代表 Kafka 操作錯誤
type KafkaError struct {
	Operation string
	Topic     string
	Err       error
}

func (e *KafkaError) Error() string {
	return fmt.Sprintf("kafka operation %s on topic %s failed: %v", e.Operation, e.Topic, e.Err)
}

func (e *KafkaError) Unwrap() error {
	return e.Err
}

func NewKafkaError(operation, topic string, err error) error {
	return &KafkaError{
		Operation: operation,
		Topic:     topic,
		Err:       err,
	}
}

// IsTemporary 判斷是否為可重試的臨時錯誤
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, kafka.LeaderNotAvailable) ||
		errors.Is(err, kafka.NotLeaderForPartition) ||
		errors.Is(err, kafka.RequestTimedOut) ||
		errors.Is(err, kafka.RebalanceInProgress) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "temporary") ||
		strings.Contains(errStr, "retriable")
}
