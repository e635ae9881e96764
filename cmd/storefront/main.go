package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tair/crumbly/internal/config"
	"github.com/tair/crumbly/internal/storefront"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/database"
	"github.com/tair/crumbly/pkg/logger"
	"github.com/tair/crumbly/pkg/storage"
	"github.com/tair/crumbly/pkg/tracing"
)

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		logger.Logger.Error().Err(err).Msg("Storefront stopped")
		os.Exit(1)
	}
}

func run() error {
	logger.Init("crumbly-storefront", logger.Options{})

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.ServiceName, logger.Options{
		Development: cfg.IsDevelopment(),
		Level:       cfg.LogLevel,
	})
	if cfg.UsesDevelopmentSecret() {
		logger.Logger.Warn().Msg("JWT_SECRET not set, using the development signing key")
	}

	tp, err := tracing.InitTracer(cfg.ServiceName, serviceVersion, cfg.JaegerEndpoint)
	if err != nil {
		return err
	}

	// Connect to database with GORM
	db, err := database.NewGormConnection(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close database pool")
		}
	}()

	if err := storefront.AutoMigrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	photos, err := newPhotoStorage(ctx, cfg)
	if err != nil {
		return err
	}

	events := newEventPublisher(cfg)
	defer func() {
		if err := events.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handlers := storefront.InitializeHandlers(cfg, db, photos, events, reg)
	handlers.Users.RefreshRegisteredUsers(ctx)

	server := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: storefront.NewRouter(handlers, storefront.RouterConfig{
			ServiceName:    cfg.ServiceName,
			PublicDir:      cfg.PublicDir,
			AllowedOrigins: cfg.AllowedOrigins,
		}, pinger(db), reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Logger.Info().
			Str("addr", server.Addr).
			Str("upload_backend", cfg.Upload.Backend).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Logger.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to flush tracer")
		}
		return nil
	})

	return g.Wait()
}

func newPhotoStorage(ctx context.Context, cfg *config.Config) (storage.PhotoStorage, error) {
	if cfg.Upload.Backend == "minio" {
		return storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:        cfg.Upload.MinioEndpoint,
			AccessKeyID:     cfg.Upload.MinioAccessKey,
			SecretAccessKey: cfg.Upload.MinioSecretKey,
			UseSSL:          cfg.Upload.MinioUseSSL,
			BucketName:      cfg.Upload.MinioBucket,
		})
	}
	return storage.NewLocalStorage(filepath.Join(cfg.PublicDir, "images"))
}

// newEventPublisher falls back to a no-op publisher when Kafka is absent or unreachable
func newEventPublisher(cfg *config.Config) kafka.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, storefront events disabled")
		return kafka.NoopPublisher{}
	}

	publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, storefront events disabled")
		return kafka.NoopPublisher{}
	}
	return publisher
}

func pinger(db *gorm.DB) storefront.Pinger {
	return func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
}
