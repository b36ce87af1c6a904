//go:generate mockgen -source ./events.go -destination=./mocks/producer.go -package=mock_events
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Type string

const (
	TypeRequested       Type = "order_requested"
	TypePaymentRecorded Type = "payment_recorded"
	TypePaid            Type = "order_paid"
	TypeFeedbackAdded   Type = "feedback_added"
	TypeRejected        Type = "order_rejected"
)

// Event is one lifecycle transition, published for downstream consumers.
// Best-effort: a failed publish never fails the command that produced it.
type Event struct {
	ID         string    `json:"event_id"`
	Type       Type      `json:"type"`
	List       string    `json:"list"`
	Row        int       `json:"row"`
	Handle     string    `json:"handle"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaProducer publishes events to a single topic, keyed by event id.
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 100 * time.Millisecond,
		},
	}
}

func (p *KafkaProducer) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.ID, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer drops events; used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) Publish(context.Context, Event) error { return nil }
func (NopProducer) Close() error                         { return nil }
