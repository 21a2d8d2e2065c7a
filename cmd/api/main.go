package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luckyegg/storefront-backend/api"
	"github.com/luckyegg/storefront-backend/api/controllers"
	"github.com/luckyegg/storefront-backend/api/routes"
	"github.com/luckyegg/storefront-backend/internal/auth"
	"github.com/luckyegg/storefront-backend/internal/cards"
	"github.com/luckyegg/storefront-backend/internal/cart"
	"github.com/luckyegg/storefront-backend/internal/catalogwatch"
	"github.com/luckyegg/storefront-backend/internal/checkout"
	"github.com/luckyegg/storefront-backend/internal/customers"
	"github.com/luckyegg/storefront-backend/internal/media"
	"github.com/luckyegg/storefront-backend/internal/orders"
	"github.com/luckyegg/storefront-backend/internal/subscribers"
	"github.com/luckyegg/storefront-backend/internal/users"
	"github.com/luckyegg/storefront-backend/pkg/auth/session"
	"github.com/luckyegg/storefront-backend/pkg/config"
	"github.com/luckyegg/storefront-backend/pkg/db"
	"github.com/luckyegg/storefront-backend/pkg/logger"
	"github.com/luckyegg/storefront-backend/pkg/metrics"
	"github.com/luckyegg/storefront-backend/pkg/migrate"
	"github.com/luckyegg/storefront-backend/pkg/redis"
	"github.com/luckyegg/storefront-backend/pkg/storage/gcs"
)

const shutdownGrace = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("auto-migrating: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer redisClient.Close()

	gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		return fmt.Errorf("building gcs client: %w", err)
	}

	sessions, err := session.NewManager(redisClient, cfg.JWT.SessionTTL())
	if err != nil {
		return fmt.Errorf("building session manager: %w", err)
	}

	gormDB := dbClient.DB()
	cardsRepo := cards.NewRepository(gormDB)
	customersRepo := customers.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	subscribersRepo := subscribers.NewRepository(gormDB)
	usersRepo := users.NewRepository(gormDB)

	notifier := catalogwatch.NewNotifier(redisClient, logg)
	watcher := catalogwatch.NewWatcher(redisClient, logg)

	cardsSvc, err := cards.NewService(cardsRepo, notifier)
	if err != nil {
		return fmt.Errorf("building cards service: %w", err)
	}

	cartSvc := cart.NewService(cart.NewRedisPersistence(redisClient, cfg.Cart.TTL), logg)

	checkoutSvc, err := checkout.NewService(dbClient, cartSvc, cardsRepo, customersRepo, ordersRepo, logg)
	if err != nil {
		return fmt.Errorf("building checkout service: %w", err)
	}

	ordersSvc, err := orders.NewService(ordersRepo)
	if err != nil {
		return fmt.Errorf("building orders service: %w", err)
	}

	subscribersSvc, err := subscribers.NewService(subscribersRepo)
	if err != nil {
		return fmt.Errorf("building subscribers service: %w", err)
	}

	authSvc, err := auth.NewService(usersRepo, sessions, cfg.JWT, cfg.Password)
	if err != nil {
		return fmt.Errorf("building auth service: %w", err)
	}

	mediaSvc, err := media.NewService(gcsClient, cfg.Media, logg)
	if err != nil {
		return fmt.Errorf("building media service: %w", err)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.New(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Sessions:    sessions,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
		Auth:        authSvc,
		Cards:       cardsSvc,
		Cart:        cartSvc,
		Checkout:    checkoutSvc,
		Orders:      ordersSvc,
		Subscribers: subscribersSvc,
		Media:       mediaSvc,
		Watcher:     watcher,
		RateLimiter: redisClient,
		Readiness: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
			"gcs":      gcsClient,
		},
	})

	server := api.NewServer(cfg.App.Port, router)

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "port", cfg.App.Port), "api listening")
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
