// Package wiring arma los repositorios y el publicador de eventos según la configuración.
package wiring

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/dealflow-api/internal/application/ports"
	"github.com/jhoicas/dealflow-api/internal/domain/repository"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/events"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dealflow-api/pkg/config"
)

// Stores repositorios del almacén compartido.
type Stores struct {
	Offers          repository.OfferRepository
	CoOffers        repository.CoInvestmentOfferRepository
	Opportunities   repository.OpportunityRepository
	Mandates        repository.MandateRepository
	Contacts        repository.TrackedContactRepository
	Startups        repository.StartupRepository
	Platform        repository.PlatformRepository
	Recommendations repository.RecommendationRepository
}

// OpenStores conecta el driver configurado. En postgres aplica el esquema antes de devolver.
// El cierre devuelto libera el pool; en memoria no hace nada.
func OpenStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &Stores{
			Offers:          memory.NewOfferStore(),
			CoOffers:        memory.NewCoInvestmentOfferStore(),
			Opportunities:   memory.NewOpportunityStore(),
			Mandates:        memory.NewMandateStore(),
			Contacts:        memory.NewContactStore(),
			Startups:        memory.NewStartupStore(),
			Platform:        memory.NewPlatformStore(),
			Recommendations: memory.NewRecommendationStore(),
		}, func() {}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		tx := postgres.NewTxRunner(pool)
		return &Stores{
			Offers:          postgres.NewOfferRepository(pool),
			CoOffers:        postgres.NewCoInvestmentOfferRepository(pool),
			Opportunities:   postgres.NewOpportunityRepository(pool),
			Mandates:        postgres.NewMandateRepository(pool, tx),
			Contacts:        postgres.NewTrackedContactRepository(pool),
			Startups:        postgres.NewStartupRepository(pool),
			Platform:        postgres.NewPlatformRepository(pool),
			Recommendations: postgres.NewRecommendationRepository(pool),
		}, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
}

// Publisher devuelve el publicador Kafka si hay brokers; si no, uno que solo registra en el log.
// El cierre devuelto vacía el writer.
func Publisher(cfg config.KafkaConfig, log zerolog.Logger) (ports.EventPublisher, func() error) {
	if !cfg.Enabled() {
		return events.NewLogPublisher(log), func() error { return nil }
	}
	p := events.NewKafkaPublisher(cfg.Brokers, cfg.Topic, log)
	return p, p.Close
}
