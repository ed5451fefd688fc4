package notify

import (
	"context"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	"budget/internal/kafka"
	"budget/internal/ledger"
	applog "budget/internal/log"
)

// Result holds the notifier chain the store should use along with the
// goroutine that drives asynchronous delivery and the cleanup for broker
// connections. Run and Cleanup may be nil.
type Result struct {
	Notifier ledger.Notifier
	Async    *Async
	Run      RunFunc
	Cleanup  CleanupFunc
}

// Factory builds notifier chains from configuration.
type Factory struct {
	logger *applog.Logger
}

// NewFactory creates a new notifier factory
func NewFactory(logger *applog.Logger) *Factory {
	if logger == nil {
		logger = &applog.Logger{Logger: slog.Default()}
	}
	return &Factory{logger: logger.WithComponent(applog.ComponentNotify)}
}

// Build assembles the notifier chain. The per-request toast sink and the
// log sink are always present. A broker backend is appended behind an
// Async buffer so a slow or unreachable broker never blocks the store.
func (f *Factory) Build(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := Multi{ToastSink{}, NewLogSink(f.logger)}

	switch cfg.Type {
	case LogBackend:
		f.logger.Info("Notifications logged only")
		return &Result{Notifier: base}, nil
	case AMQPBackend:
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize AMQP client: %w", err)
		}
		f.logger.Info("Initialized AMQP notifications",
			"exchange", cfg.AMQPExchange,
			"queue", cfg.AMQPQueue)
		return f.withBroker(base, applog.ComponentAMQP, client, cfg.Buffer, client.Close), nil
	case KafkaBackend:
		pub := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		f.logger.Info("Initialized Kafka notifications",
			"brokers", cfg.KafkaBrokers,
			"topic", cfg.KafkaTopic)
		return f.withBroker(base, applog.ComponentKafka, pub, cfg.Buffer, pub.Close), nil
	default:
		return nil, fmt.Errorf("unsupported notify backend: %s", cfg.Type)
	}
}

func (f *Factory) withBroker(base Multi, component string, pub Publisher, buffer int, cleanup CleanupFunc) *Result {
	async := NewAsync(NewBrokerSink(component, pub), buffer)
	return &Result{
		Notifier: append(base, async),
		Async:    async,
		Run:      async.Run,
		Cleanup:  cleanup,
	}
}
