package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raymond9734/customer-dashboard-backend/internal/config"
	"github.com/Raymond9734/customer-dashboard-backend/internal/handler"
	"github.com/Raymond9734/customer-dashboard-backend/internal/repository"
	"github.com/Raymond9734/customer-dashboard-backend/internal/seed"
	"github.com/Raymond9734/customer-dashboard-backend/internal/service"
	"github.com/Raymond9734/customer-dashboard-backend/internal/session"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting customer dashboard API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Session store
	var sessions session.Store
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		sessions, err = session.NewRedisStore(session.RedisConfig{
			URL: cfg.Session.RedisURL,
			TTL: cfg.Session.TTL,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("connected to Redis session store")
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}
	defer sessions.Close()

	// Customer collection
	ids, err := repository.NewSnowflakeGenerator(cfg.Customer.NodeID)
	if err != nil {
		logger.Error("failed to create id generator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	customerRepo := repository.NewCustomerRepository(ids, time.Now)

	fixtures, err := seed.LoadFixtures()
	if err != nil {
		logger.Error("failed to load seed fixtures", slog.String("error", err.Error()))
		os.Exit(1)
	}
	generator := seed.NewGenerator(fixtures, cfg.Seed.RandomCount)

	// Initialize services
	customerSvc := service.NewCustomerService(
		customerRepo,
		generator,
		func() seed.Source { return seed.NewSource(cfg.Seed.Value) },
		logger,
	)
	dashboardSvc := service.NewDashboardService(
		customerSvc,
		sessions,
		cfg.Customer.DefaultPageSize,
		logger,
	)

	count, err := customerSvc.Reseed(context.Background())
	if err != nil {
		logger.Error("failed to seed customers", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("customer collection seeded", slog.Int("count", count))

	// Setup router
	r := handler.NewRouter(handler.RouterConfig{
		Customers:      handler.NewCustomerHandler(customerSvc, logger),
		Sessions:       handler.NewSessionHandler(dashboardSvc, logger),
		Health:         handler.NewHealthHandler(sessions, cfg.Session.Backend, logger),
		AllowedOrigins: cfg.API.AllowedOrigins,
		Logger:         logger,
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
