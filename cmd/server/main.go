package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/api"
	"github.com/experium/bookingapi/internal/cart"
	"github.com/experium/bookingapi/internal/catalog"
	"github.com/experium/bookingapi/internal/config"
	"github.com/experium/bookingapi/internal/domain"
	"github.com/experium/bookingapi/internal/geo"
	"github.com/experium/bookingapi/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database and apply migrations
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	repos := postgres.NewRepositories(db, logger)

	// Cart snapshot storage
	var snapshots cart.Snapshots
	if cfg.Cart.SnapshotBackend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cart.RedisAddr,
			Password: cfg.Cart.RedisPassword,
			DB:       cfg.Cart.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		snapshots = cart.NewRedisSnapshots(client)
	} else {
		snapshots = cart.NewFileSnapshots(cfg.Cart.SnapshotDir)
	}

	// Core components
	cat := catalog.Seed()
	store := cart.NewStore(context.Background(), snapshots, logger)
	resolver := geo.NewTableResolver()

	store.Subscribe(func(session domain.CartSession) {
		logger.Debug("Cart session changed",
			zap.Int("items", len(session.Items)),
			zap.Int("checkout_step", session.CheckoutStep),
		)
	})

	router := api.NewRouter(cfg, cat, store, resolver, repos, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Int("catalog_size", cat.Len()),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
