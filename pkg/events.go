package pkg

import (
	"log/slog"

	"github.com/SAP-F-2025/nova-scholar-service/internal/config"
	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
)

// NewEventPublisher publishes to Kafka when brokers are configured and to
// an in-process channel otherwise.
func NewEventPublisher(cfg *config.Config, logger *slog.Logger) (events.EventPublisher, error) {
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Publishing events to kafka", "brokers", cfg.Kafka.Brokers)
		return publisher, nil
	}

	publisher, _ := events.NewGoChannelPublisher(cfg.Kafka.TopicPrefix, logger)
	return publisher, nil
}
