// Package events implementa ports.EventPublisher sobre Kafka o sobre el log.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/dealflow-api/internal/application/ports"
)

var (
	_ ports.EventPublisher = (*KafkaPublisher)(nil)
	_ ports.EventPublisher = (*LogPublisher)(nil)
)

// Writer subconjunto de kafka.Writer que usa el publicador; permite inyectar un fake en tests.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos como JSON con la clave de la entidad (orden por partición).
type KafkaPublisher struct {
	writer Writer
	log    zerolog.Logger
}

// NewKafkaPublisher crea un publicador hacia los brokers (separados por coma) y el tópico dados.
func NewKafkaPublisher(brokers, topic string, log zerolog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(splitBrokers(brokers)...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return NewKafkaPublisherWithWriter(w, log)
}

// NewKafkaPublisherWithWriter permite inyectar el writer.
func NewKafkaPublisherWithWriter(w Writer, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log.With().Str("component", "kafka").Logger()}
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Publish serializa el evento y lo escribe; el tipo viaja también como header.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, event ports.Event) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento %s: %w", event.Type, err)
	}
	msg := kafka.Message{
		Key:     []byte(key),
		Value:   b,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(event.Type)}},
		Time:    event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error().Err(err).Str("event", event.Type).Str("key", key).Msg("error escribiendo en kafka")
		return fmt.Errorf("kafka: %w", err)
	}
	return nil
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher escribe los eventos en el log estructurado (desarrollo, o sin brokers configurados).
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher crea el publicador de log.
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, key string, event ports.Event) error {
	p.log.Info().Str("event", event.Type).Str("key", key).Interface("payload", event.Payload).Msg("evento")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
