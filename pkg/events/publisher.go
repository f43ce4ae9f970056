package events

import (
	"context"
	"encoding/json"
	"fmt"
	"rhr/pkg/logger"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// Headers attached to every room event message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

type Publisher interface {
	Publish(ctx context.Context, event RoomEvent) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	source string
}

// NewKafkaPublisher creates a publisher for room lifecycle events.
func NewKafkaPublisher(brokers []string, topic string, source string) (Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // Hash by key for per-room ordering
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 100 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
	}

	return &kafkaPublisher{writer: writer, source: source}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, event RoomEvent) error {
	if event.RoomID == "" {
		return fmt.Errorf("event room id cannot be empty")
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode room event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RoomID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderSource, Value: []byte(p.source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish room event: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct {
	log *logger.Logger
}

// NewNoopPublisher is used when no Kafka brokers are configured. Events are
// dropped after a debug log so the lifecycle engine stays publisher-agnostic.
func NewNoopPublisher(log *logger.Logger) Publisher {
	return &noopPublisher{log: log}
}

func (p *noopPublisher) Publish(_ context.Context, event RoomEvent) error {
	p.log.Debug("Room event dropped, no Kafka brokers configured",
		"event_id", event.ID,
		"event_type", event.Type,
		"room_id", event.RoomID,
	)
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
