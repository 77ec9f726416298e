package notify

import (
	"context"
	"encoding/json"
	"time"

	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type notificationEvent struct {
	Recipient string    `json:"recipient"`
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sentAt"`
}

// KafkaSender publishes notifications as events for a downstream delivery
// service. Messages are keyed by recipient so one user's events stay ordered.
type KafkaSender struct {
	writer messageWriter
	clock  clock.Clock
}

func NewKafkaSender(brokers []string, topic string, clk clock.Clock) (*KafkaSender, error) {
	if len(brokers) == 0 {
		return nil, errs.New("at least one kafka broker is required")
	}
	if topic == "" {
		return nil, errs.New("kafka topic cannot be empty")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newKafkaSender(w, clk), nil
}

func newKafkaSender(w messageWriter, clk clock.Clock) *KafkaSender {
	return &KafkaSender{writer: w, clock: clk}
}

func (s *KafkaSender) Send(ctx context.Context, n shared.Notification) error {
	now := s.clock.Now()
	value, err := json.Marshal(notificationEvent{Recipient: n.Recipient, Text: n.Text, SentAt: now})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification event")
	}
	msg := kafka.Message{
		Key:     []byte(n.Recipient),
		Value:   value,
		Time:    now,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte("reservation.confirmed")}},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to publish notification")
	}
	return nil
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}
