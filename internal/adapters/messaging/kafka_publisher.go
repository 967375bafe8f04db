package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"geogate/internal/ports"
)

type KafkaConfig struct {
	Brokers string
	Topic   string
}

// KafkaPublisher implements ports.EventPublisher using kafka-go.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns a publisher writing to cfg.Topic. With no brokers
// configured it returns a NoopPublisher.
func NewKafkaPublisher(cfg KafkaConfig) (ports.EventPublisher, error) {
	var brokers []string
	for _, b := range strings.Split(cfg.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return NoopPublisher{}, nil
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("no kafka topic configured")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{writer: writer}, nil
}

// Publish writes one message. Messages sharing a key land on the same
// partition, so events for one dataset name stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, key, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: key, Value: value}); err != nil {
		return fmt.Errorf("failed to publish kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, []byte, []byte) error { return nil }
