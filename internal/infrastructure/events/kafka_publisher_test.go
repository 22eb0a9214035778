package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/application/ports"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/events"
)

// fakeWriter registra los mensajes escritos.
type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_PublicaConClaveYCabecera(t *testing.T) {
	fw := &fakeWriter{}
	p := events.NewKafkaPublisherWithWriter(fw, zerolog.Nop())
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := p.Publish(context.Background(), "offer-1", ports.Event{
		Type:       ports.EventContactsRevealed,
		OccurredAt: at,
		Payload:    ports.ContactsRevealed{OfferID: "offer-1", InvestorEmail: "ana@fund.io"},
	})
	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)

	msg := fw.msgs[0]
	assert.Equal(t, "offer-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, ports.EventContactsRevealed, string(msg.Headers[0].Value))

	var decoded struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ports.EventContactsRevealed, decoded.Type)
	assert.Equal(t, "ana@fund.io", decoded.Payload["investor_email"])
}

func TestKafkaPublisher_ErrorDeEscritura(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker no disponible")}
	p := events.NewKafkaPublisherWithWriter(fw, zerolog.Nop())

	err := p.Publish(context.Background(), "k", ports.Event{Type: ports.EventDealDecided})
	assert.ErrorContains(t, err, "broker no disponible")
}

func TestLogPublisher_RegistraEvento(t *testing.T) {
	var buf bytes.Buffer
	p := events.NewLogPublisher(zerolog.New(&buf))

	require.NoError(t, p.Publish(context.Background(), "c-1", ports.Event{
		Type:    ports.EventInvitationRequested,
		Payload: ports.InvitationRequested{ContactID: "c-1", Link: "https://x/join/t"},
	}))
	assert.Contains(t, buf.String(), `"event":"contact.invitation_requested"`)
	assert.Contains(t, buf.String(), `"contact_id":"c-1"`)
}
