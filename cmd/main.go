package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/coffee-shop/internal/catalog"
	"github.com/fjod/coffee-shop/internal/checkout"
	"github.com/fjod/coffee-shop/internal/config"
	"github.com/fjod/coffee-shop/internal/domain"
	h "github.com/fjod/coffee-shop/internal/http"
	"github.com/fjod/coffee-shop/internal/publisher"
	s "github.com/fjod/coffee-shop/internal/service"
	"github.com/fjod/coffee-shop/internal/storage"
	"github.com/fjod/coffee-shop/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.New(cfg.LogLevel, cfg.LogFormat))

	ctx := context.Background()

	// Catalog. A broken source leaves an empty menu, the shop still starts.
	menu, err := catalog.NewLoader(cfg.CatalogSource).Load(ctx)
	if err != nil {
		slog.Error("failed to load catalog", "source", cfg.CatalogSource, "error", err)
	}
	provider := catalog.NewProvider(menu, catalog.NewPricing(cfg.SizeMultipliers()))

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage ready", "driver", cfg.StorageDriver)

	cart, err := s.NewCartStore(ctx, provider, store, domain.Amount(cfg.DeliveryFee))
	if err != nil {
		slog.Error("failed to restore cart", "error", err)
		os.Exit(1)
	}

	var pub publisher.Publisher = publisher.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = publisher.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		slog.Info("publishing order events", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}
	defer pub.Close()

	resumed, err := checkout.Resume(ctx, cart, store, pub, cfg.PaymentStatusDelay)
	if err != nil {
		slog.Error("failed to restore checkout", "error", err)
		os.Exit(1)
	}
	session := checkout.NewSession(resumed, func() *checkout.Flow {
		return checkout.NewFlow(cart, store, pub, cfg.PaymentStatusDelay)
	})

	router := h.NewRouter(
		h.NewMenuHandler(provider),
		h.NewCartHandler(cart, cfg.RequestTimeout),
		h.NewCheckoutHandler(session, cfg.RequestTimeout),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exited")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return storage.NewMemoryStore(), nil
	case config.DriverSQLite:
		return storage.NewSQLiteStore(cfg.SQLitePath)
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		return storage.NewRedisStore(client, cfg.RedisKeyPrefix, cfg.RedisTTL), nil
	case config.DriverMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		return storage.NewMongoStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
