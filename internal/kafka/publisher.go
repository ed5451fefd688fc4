// Package kafka publishes transaction events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"budget/internal/events"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

// PublishEvent writes ev keyed by transaction id, so every event for one
// transaction lands on the same partition.
func (p *Publisher) PublishEvent(ctx context.Context, ev *events.TransactionEvent) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   ev.Key(),
		Value: data,
		Time:  ev.Timestamp,
		Headers: []kafka.Header{
			{Key: "op", Value: []byte(ev.Op)},
		},
	})
	if err != nil {
		return fmt.Errorf("write to topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
