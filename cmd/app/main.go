package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ecomcore/order-service/internal/application/service"
	"github.com/ecomcore/order-service/internal/cache"
	"github.com/ecomcore/order-service/internal/config"
	"github.com/ecomcore/order-service/internal/database"
	"github.com/ecomcore/order-service/internal/httpapi"
	"github.com/ecomcore/order-service/internal/observability"
	"github.com/ecomcore/order-service/internal/pkg/breaker"
	"github.com/ecomcore/order-service/internal/pkg/pool"
	"github.com/ecomcore/order-service/internal/stock"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres connect", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	var store cache.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis connect", zap.Error(err))
		}
		defer client.Close()
		store = cache.NewRedis(client)
	} else {
		logger.Warn("REDIS_ADDR is not set, using in-process cache")
		store = cache.NewMemory(cfg.CacheSize, cfg.CacheTTL)
	}

	metrics := observability.NewPrometheus(prometheus.DefaultRegisterer)

	// Detached side effects drain through the task pool on shutdown.
	tasks := pool.New(cfg.Workers)
	defer func() {
		tasks.Close()
		tasks.Wait()
	}()

	writer := stock.NewWriter(cfg.Kafka)
	defer writer.Close()
	publisher := stock.NewPublisher(writer, breaker.New(cfg.Breaker), cfg.Retry, logger)

	svc := service.New(
		database.NewOrderRepo(db),
		publisher,
		cache.NewAccessor(store, logger, metrics),
		cache.NewInvalidator(store, logger, metrics),
		tasks,
		cfg.CacheTTL,
		logger,
	)

	server := httpapi.New(svc, logger, metrics)
	logger.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server stopped", zap.Error(err))
	}
}
