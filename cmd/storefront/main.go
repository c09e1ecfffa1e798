package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopsphere/storefront-client/internal/admin"
	"github.com/shopsphere/storefront-client/internal/api"
	"github.com/shopsphere/storefront-client/internal/catalog"
	"github.com/shopsphere/storefront-client/internal/checkout"
	"github.com/shopsphere/storefront-client/internal/config"
	"github.com/shopsphere/storefront-client/internal/metrics"
	"github.com/shopsphere/storefront-client/internal/store"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Redis setup (the cart/auth persistence collaborator)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Addr,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	appStore := store.New(store.NewRedisPersister(redisClient, cfg.StatePrefix))

	// Restore persisted cart/auth state before anything renders.
	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelRestore()

	if err := appStore.Restore(restoreCtx); err != nil {
		slog.Error("❌ Failed to restore persisted state", "error", err.Error())
		os.Exit(1)
	}

	apiClient := api.New(&cfg.API, appStore)
	catalogService := catalog.NewService(apiClient)
	adminService := admin.NewService(apiClient)
	submitter := checkout.NewSubmitter(apiClient, appStore)

	slog.Info("storefront client initialized",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.API.BaseURL))

	// Optional metrics listener
	var metricsServer *http.Server

	if cfg.Metrics.Addr != "" {

		metricsMux := http.NewServeMux()
		metricsMux.Handle("GET /metrics", metrics.Handler())

		metricsServer = &http.Server{
			Addr:    cfg.Metrics.Addr,
			Handler: metricsMux,
		}

		go func() {
			if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
				slog.Error("❌ Failed to start metrics listener", slog.Any("error", err.Error()))
			}
		}()

		slog.Info("📈 Metrics listener started", slog.String("address", cfg.Metrics.Addr))
	}

	session := newSession(appStore, apiClient, catalogService, adminService, submitter)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sessionDone := make(chan struct{})

	go func() {
		session.run(os.Stdin, os.Stdout)
		close(sessionDone)
	}()

	select {
	case <-done:
		slog.Warn("🛑 Shutdown signal received. Closing the session...")
	case <-sessionDone:
	}

	if metricsServer != nil {

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Metrics listener shutdown encountered an issue", slog.String("error", err.Error()))
		}
	}

	slog.Info("✅ Session closed. Cart and auth state are persisted.")
}
