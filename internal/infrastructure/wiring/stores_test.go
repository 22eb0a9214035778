package wiring_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dealflow-api/internal/infrastructure/events"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/wiring"
	"github.com/jhoicas/dealflow-api/pkg/config"
)

func TestOpenStores_MemoriaArmaTodosLosRepos(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "memory"}}
	stores, closeFn, err := wiring.OpenStores(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()

	assert.NotNil(t, stores.Offers)
	assert.NotNil(t, stores.Mandates)
	assert.NotNil(t, stores.Platform)

	st, err := stores.Startups.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestOpenStores_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}
	_, _, err := wiring.OpenStores(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestPublisher_SinBrokersUsaLog(t *testing.T) {
	pub, closeFn := wiring.Publisher(config.KafkaConfig{Topic: "t"}, zerolog.Nop())
	_, ok := pub.(*events.LogPublisher)
	assert.True(t, ok)
	assert.NoError(t, closeFn())

	pub, closeFn = wiring.Publisher(config.KafkaConfig{Brokers: "localhost:9092", Topic: "t"}, zerolog.Nop())
	_, ok = pub.(*events.KafkaPublisher)
	assert.True(t, ok)
	assert.NoError(t, closeFn())
}
