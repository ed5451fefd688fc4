package notify

import (
	"errors"
	"fmt"

	"budget/internal/config"
)

// FromAppConfig converts the application config to notifier config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, errors.New("app config is nil")
	}

	backendType := BackendType(appConfig.NotifyBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid notify backend in config: %s", appConfig.NotifyBackend)
	}

	return Config{
		Type:         backendType,
		Buffer:       appConfig.NotifyBuffer,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
		KafkaBrokers: appConfig.KafkaBrokers,
		KafkaTopic:   appConfig.KafkaTopic,
	}, nil
}

// Validate validates the notifier configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid notify backend %q: must be one of %v", c.Type, BackendTypes())
	}

	switch c.Type {
	case AMQPBackend:
		if c.AMQPURL == "" {
			return errors.New("AMQP URL is required for amqp notify backend")
		}
		if c.AMQPExchange == "" || c.AMQPQueue == "" {
			return errors.New("AMQP exchange and queue are required for amqp notify backend")
		}
	case KafkaBackend:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("at least one Kafka broker is required for kafka notify backend")
		}
		if c.KafkaTopic == "" {
			return errors.New("Kafka topic is required for kafka notify backend")
		}
	}

	return nil
}

// BackendTypes returns all valid backend types
func BackendTypes() []BackendType {
	return []BackendType{LogBackend, AMQPBackend, KafkaBackend}
}
