package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fjod/go_storefront/internal/cart"
	"github.com/fjod/go_storefront/internal/cart/cache"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/checkout/publisher"
	"github.com/fjod/go_storefront/internal/config"
	storehttp "github.com/fjod/go_storefront/internal/http"
	"github.com/fjod/go_storefront/pkg/logger"
	"github.com/fjod/go_storefront/pkg/mongodb"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx := context.Background()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(ctx)
	log.Info("connected to MongoDB", "uri", cfg.MongoURI, "db", cfg.MongoDBName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", "error", err)
		os.Exit(1)
	}
	log.Info("Redis ping succeeded", "addr", cfg.RedisAddr)

	catalogRepo := catalog.NewMongoRepository(db)
	if err := catalogRepo.CreateIndexes(ctx); err != nil {
		log.Error("failed to create catalog indexes", "error", err)
		os.Exit(1)
	}
	catalogService := catalog.NewService(catalogRepo)
	if err := catalogService.Seed(ctx); err != nil {
		log.Error("catalog seeding failed", "error", err)
		os.Exit(1)
	}

	cartRepo := cart.NewMongoRepository(db)
	if err := cartRepo.CreateIndexes(ctx); err != nil {
		log.Error("failed to create cart indexes", "error", err)
		os.Exit(1)
	}
	cartCache := cache.NewRedisCache(redisClient)
	cartService := cart.NewService(cartRepo, cartCache, catalogService)

	receiptRepo := checkout.NewMongoRepository(db)
	var events checkout.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := publisher.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		events = kafkaPublisher
		log.Info("checkout events enabled", "brokers", cfg.KafkaBrokers)
	}
	checkoutService := checkout.NewService(receiptRepo, cartService, events)

	router := storehttp.NewRouter(
		storehttp.NewProductHandler(catalogService, cfg.RequestTimeout),
		storehttp.NewCartHandler(cartService, cfg.RequestTimeout),
		storehttp.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
