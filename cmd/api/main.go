package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edudocs-api/internal/config"
	"github.com/noah-isme/edudocs-api/internal/handler"
	"github.com/noah-isme/edudocs-api/internal/middleware"
	"github.com/noah-isme/edudocs-api/internal/observability"
	"github.com/noah-isme/edudocs-api/internal/repository"
	"github.com/noah-isme/edudocs-api/internal/router"
	"github.com/noah-isme/edudocs-api/internal/service"
	"github.com/noah-isme/edudocs-api/internal/storage"
	"github.com/noah-isme/edudocs-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel).With().Timestamp().Str("service", cfg.AppName).Logger()
	observability.RegisterMetrics()

	validate := validator.New(validator.WithRequiredStructEnabled())
	blobs := storage.NewBlobRegistry()

	repoOptions := []repository.Option{}
	if !cfg.MockLatency {
		repoOptions = append(repoOptions, repository.WithLatency(repository.Latency{}))
	}
	repo := repository.NewMemoryRepository(blobs, validate, repoOptions...)
	if cfg.SeedDemoData {
		repo.Seed()
	}

	generator, err := newGenerator(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create text generator")
	}
	if generator == nil {
		logger.Warn().Msg("no text generation credential configured, assistant disabled")
	}

	assistantService := service.NewAssistantService(generator, logger)

	syncMode := service.SyncRefresh
	if cfg.IncrementalSync {
		syncMode = service.SyncIncremental
	}
	session := service.NewSessionCoordinator(repo, assistantService, syncMode, logger)

	refreshCtx, cancelRefresh := context.WithTimeout(context.Background(), 10*time.Second)
	if err := session.Refresh(refreshCtx); err != nil {
		logger.Warn().Err(err).Msg("initial refresh failed, starting with empty caches")
	}
	cancelRefresh()

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    handler.MaxUploadBytes + 1<<20,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		Session:          session,
		Assistant:        assistantService,
		UserHandler:      handler.NewUserHandler(session, validate, logger),
		SessionHandler:   handler.NewSessionHandler(session, assistantService, validate, logger),
		DocumentHandler:  handler.NewDocumentHandler(session, validate, logger),
		BlobHandler:      handler.NewBlobHandler(blobs, session, logger),
		AssistantHandler: handler.NewAssistantHandler(session, validate, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Bool("assistant", assistantService.Available()).Msg("server started")
	waitForShutdown(app, logger)
}

// newGenerator returns a nil generator when no credential is configured so the
// assistant runs in its unavailable mode.
func newGenerator(cfg config.Config, logger zerolog.Logger) (ai.TextGenerator, error) {
	if !cfg.AssistantEnabled() {
		return nil, nil
	}

	generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.AIModel,
		BaseURL:     cfg.AIBaseURL,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	return generator, nil
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
