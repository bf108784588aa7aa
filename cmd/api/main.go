package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/auth"
	"trem-do-bem/internal/config"
	"trem-do-bem/internal/database"
	"trem-do-bem/internal/handler"
	"trem-do-bem/internal/notify"
	"trem-do-bem/internal/repository"
	"trem-do-bem/internal/router"
	"trem-do-bem/internal/seed"
	"trem-do-bem/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("storage", cfg.Storage.Driver).Msg("starting trem-do-bem API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Seed the catalogue on first boot
	if _, err := seed.Seed(ctx, store, newSeedLoader(ctx, cfg, logger), cfg.Seed.FilePath, logger); err != nil {
		return fmt.Errorf("failed to seed catalogue: %w", err)
	}

	// Notifications
	notifier := notify.NewWebhookNotifier(
		cfg.WhatsApp.Enabled,
		cfg.WhatsApp.WebhookURL,
		&http.Client{Timeout: cfg.WhatsApp.Timeout},
		logger,
	)
	dispatcher := notify.NewDispatcher(notifier, cfg.WhatsApp.Timeout, logger)

	// Auth
	credential := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	passwords := auth.NewPasswordChecker(cfg.Auth.AdminPassword, cfg.Auth.AdminPasswordHash)

	// Initialize services
	productService := service.NewProductService(store, logger)
	orderService := service.NewOrderService(store, store, dispatcher, logger)
	authService := service.NewAuthService(cfg.Auth.AdminUser, passwords, credential, logger)
	notificationService := service.NewNotificationService(notifier, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Product:      handler.NewProductHandler(productService, logger),
		Order:        handler.NewOrderHandler(orderService, logger),
		Auth:         handler.NewAuthHandler(authService, logger),
		Notification: handler.NewNotificationHandler(notificationService, logger),
	}, credential, cfg.CORS.AllowedOrigins, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		// Let in-flight customer notifications finish
		if err := dispatcher.Wait(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("pending notifications abandoned")
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// openStore builds the configured storage backend.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn().Msg("using in-memory storage, data is lost on restart")
		return repository.NewMemoryStore(nil, logger), nil

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.Migrate(pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return &pooledStore{Store: repository.NewPostgresStore(pool, logger), close: pool.Close}, nil

	default:
		store, err := repository.NewFileStore(cfg.Storage.FilePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage file: %w", err)
		}
		return store, nil
	}
}

// pooledStore closes the connection pool together with the store.
type pooledStore struct {
	repository.Store
	close func()
}

func (s *pooledStore) Close() error {
	err := s.Store.Close()
	s.close()
	return err
}

// newSeedLoader reads seed files from S3 when enabled, falling back to local disk.
func newSeedLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) seed.Loader {
	fileLoader := seed.NewFileLoader(logger)
	if !cfg.S3.Enabled {
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}
	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
}
