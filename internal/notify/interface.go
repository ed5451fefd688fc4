// Package notify implements the notification sinks that receive one
// message per transaction store operation.
package notify

import (
	"context"

	"budget/internal/events"
)

// Publisher sends transaction events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, ev *events.TransactionEvent) error
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// RunFunc drives background delivery until ctx is cancelled.
type RunFunc func(ctx context.Context) error

// BackendType names where notifications are forwarded besides the log.
type BackendType string

const (
	LogBackend   BackendType = "log"
	AMQPBackend  BackendType = "amqp"
	KafkaBackend BackendType = "kafka"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case LogBackend, AMQPBackend, KafkaBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for sink creation
type Config struct {
	Type   BackendType
	Buffer int

	// AMQP specific
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Kafka specific
	KafkaBrokers []string
	KafkaTopic   string
}
