package audit

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the sink needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSink publishes every audit event so downstream consumers (reminders,
// analytics) can follow agenda changes. Messages are keyed by barber so one
// barber's events stay ordered within a partition.
type KafkaSink struct {
	w     MessageWriter
	topic string
}

func NewKafkaSink(w MessageWriter, topic string) *KafkaSink {
	return &KafkaSink{w: w, topic: topic}
}

// NewKafkaWriter returns a hash-balanced writer for the given brokers.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

// SplitBrokers parses a comma separated broker list, skipping blanks.
func SplitBrokers(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

type kafkaPayload struct {
	EventID      string    `json:"event_id"`
	Action       string    `json:"action"`
	BarbershopID uint      `json:"barbershop_id"`
	BarberID     *uint     `json:"barber_id,omitempty"`
	Entity       string    `json:"entity"`
	EntityID     *uint     `json:"entity_id,omitempty"`
	Metadata     any       `json:"metadata,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (s *KafkaSink) Write(ctx context.Context, ev Event) error {
	value, err := json.Marshal(kafkaPayload{
		EventID:      ev.ID,
		Action:       ev.Action,
		BarbershopID: ev.BarbershopID,
		BarberID:     ev.BarberID,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     ev.Metadata,
		OccurredAt:   ev.OccurredAt,
	})
	if err != nil {
		return err
	}

	key := "shop-" + strconv.FormatUint(uint64(ev.BarbershopID), 10)
	if ev.BarberID != nil {
		key = "barber-" + strconv.FormatUint(uint64(*ev.BarberID), 10)
	}

	return s.w.WriteMessages(ctx, kafka.Message{
		Topic: s.topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.ID)},
			{Key: "event_type", Value: []byte(ev.Action)},
		},
	})
}
