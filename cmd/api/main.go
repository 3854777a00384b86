package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/waiyanphyo/shopdesk-backend/api/routes"
	"github.com/waiyanphyo/shopdesk-backend/internal/cart"
	"github.com/waiyanphyo/shopdesk-backend/internal/checkout"
	"github.com/waiyanphyo/shopdesk-backend/internal/customers"
	"github.com/waiyanphyo/shopdesk-backend/internal/histories"
	"github.com/waiyanphyo/shopdesk-backend/internal/locations"
	"github.com/waiyanphyo/shopdesk-backend/internal/notifications"
	"github.com/waiyanphyo/shopdesk-backend/internal/orders"
	"github.com/waiyanphyo/shopdesk-backend/internal/staff"
	"github.com/waiyanphyo/shopdesk-backend/pkg/auth/session"
	"github.com/waiyanphyo/shopdesk-backend/pkg/config"
	"github.com/waiyanphyo/shopdesk-backend/pkg/db"
	"github.com/waiyanphyo/shopdesk-backend/pkg/logger"
	"github.com/waiyanphyo/shopdesk-backend/pkg/metrics"
	"github.com/waiyanphyo/shopdesk-backend/pkg/migrate"
	"github.com/waiyanphyo/shopdesk-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "shopdesk-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logg.Error(ctx, "closing database failed", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, database); err != nil {
		return fmt.Errorf("auto-migrating: %w", err)
	}

	cache, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return fmt.Errorf("connecting redis: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logg.Error(ctx, "closing redis failed", err)
		}
	}()

	sessions, err := session.NewManager(cache, cfg.JWT)
	if err != nil {
		return fmt.Errorf("building session manager: %w", err)
	}

	conn := database.DB()
	ordersRepo := orders.NewRepository(conn)
	customersRepo := customers.NewRepository(conn)
	locationsRepo := locations.NewRepository(conn)
	staffRepo := staff.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	notificationsRepo := notifications.NewRepository(conn)
	recorder := histories.NewRecorder()

	notificationsSvc, err := notifications.NewService(notificationsRepo, database)
	if err != nil {
		return fmt.Errorf("building notifications service: %w", err)
	}

	ordersSvc, err := orders.NewService(ordersRepo, staffRepo, recorder, database, notificationsSvc, logg)
	if err != nil {
		return fmt.Errorf("building orders service: %w", err)
	}

	checkoutSvc, err := checkout.NewService(ordersRepo, customersRepo, locationsRepo, cartRepo, recorder, database, notificationsSvc, logg)
	if err != nil {
		return fmt.Errorf("building checkout service: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.New(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            database,
		Redis:         cache,
		Sessions:      sessions,
		Orders:        ordersSvc,
		Checkout:      checkoutSvc,
		Notifications: notificationsSvc,
		Metrics:       httpMetrics,
		Registry:      registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	return nil
}
