// reconcile ejecuta una pasada de reconciliación de contactos rastreados para todos los asesores:
// retira los que ya están vinculados al asesor en la plataforma y enlaza los que coinciden por email.
//
// Uso: go run ./cmd/reconcile
// Lee la misma configuración que la API (STORE_DRIVER, DATABASE_URL, RECONCILE_CONCURRENCY, KAFKA_*).
// Sale con código 1 si algún asesor o contacto falló.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/dealflow-api/internal/application/contacts"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/wiring"
	"github.com/jhoicas/dealflow-api/pkg/config"
	"github.com/jhoicas/dealflow-api/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name + "-reconcile",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := wiring.OpenStores(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Error().Err(err).Msg("abrir almacén")
		return 1
	}
	defer closeStores()

	publisher, closePublisher := wiring.Publisher(cfg.Kafka, log.Zerolog())
	defer func() { _ = closePublisher() }()

	svc := contacts.NewService(stores.Contacts, stores.Platform, publisher, contacts.Config{
		InviteBaseURL: cfg.Contacts.InviteBaseURL,
		Concurrency:   cfg.Contacts.ReconcileConcurrency,
	}, log.Zerolog())

	results, err := svc.ReconcileAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconciliación interrumpida")
		return 1
	}

	var retired, linked, failed int
	for _, r := range results {
		retired += len(r.Retired)
		linked += len(r.Linked)
		failed += len(r.Failures)
	}
	log.Info().
		Int("owners", len(results)).
		Int("retired", retired).
		Int("linked", linked).
		Int("failures", failed).
		Msg("reconciliación completada")

	if failed > 0 {
		return 1
	}
	return 0
}
