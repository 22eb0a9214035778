package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/dealflow-api/internal/application/contacts"
	"github.com/jhoicas/dealflow-api/internal/application/deals"
	"github.com/jhoicas/dealflow-api/internal/application/mandates"
	"github.com/jhoicas/dealflow-api/internal/application/recommendations"
	"github.com/jhoicas/dealflow-api/internal/infrastructure/wiring"
	httpRouter "github.com/jhoicas/dealflow-api/internal/interfaces/http"
	"github.com/jhoicas/dealflow-api/pkg/config"
	"github.com/jhoicas/dealflow-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es requerido")
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, closeStores, err := wiring.OpenStores(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer closeStores()

	publisher, closePublisher := wiring.Publisher(cfg.Kafka, log.Zerolog())
	defer func() {
		if err := closePublisher(); err != nil {
			log.Error().Err(err).Msg("cerrar publicador de eventos")
		}
	}()

	dealSvc := deals.NewService(stores.Offers, stores.CoOffers, stores.Opportunities, stores.Startups,
		publisher, log.Zerolog())
	mandateSvc := mandates.NewService(stores.Mandates, stores.Startups, log.Zerolog())
	contactSvc := contacts.NewService(stores.Contacts, stores.Platform, publisher, contacts.Config{
		InviteBaseURL: cfg.Contacts.InviteBaseURL,
		Concurrency:   cfg.Contacts.ReconcileConcurrency,
	}, log.Zerolog())
	recSvc := recommendations.NewService(stores.Recommendations, stores.Mandates, stores.Startups,
		publisher, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Dealflow API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Deals:           dealSvc,
		Mandates:        mandateSvc,
		Contacts:        contactSvc,
		Recommendations: recSvc,
		JWTSecret:       cfg.JWT.Secret,
		JWTIssuer:       cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
