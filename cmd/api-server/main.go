package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchmate/database"
	"watchmate/internal/config"
	"watchmate/internal/microservices/http-api/handler"
	"watchmate/internal/microservices/http-api/repository"
	"watchmate/internal/microservices/http-api/service"
	"watchmate/internal/throttle"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database_unavailable", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	limiter, closeLimiter, err := newLimiter(cfg, logger)
	if err != nil {
		logger.Error("throttle_backend_unavailable", "error", err)
		os.Exit(1)
	}
	defer closeLimiter()

	rates, err := throttleRates(cfg)
	if err != nil {
		logger.Error("invalid_throttle_rates", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	platformRepo := repository.NewPlatformRepository(db)
	watchListRepo := repository.NewWatchListRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo, logger)
	if cfg.AdminUsername != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		if err != nil {
			logger.Error("admin_bootstrap_failed", "error", err)
			os.Exit(1)
		}
	}

	router := handler.NewRouter(handler.Deps{
		Auth:       authService,
		Platforms:  service.NewPlatformService(platformRepo, cfg.PageSize),
		WatchLists: service.NewWatchListService(watchListRepo, platformRepo),
		Reviews:    service.NewReviewService(repository.NewLedgerTx(db), reviewRepo, cfg.PageSize, logger),
		Limiter:    limiter,
		Rates:      rates,
		Logger:     logger,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:         300,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           http.TimeoutHandler(corsHandler(router), cfg.RequestTimeout, `{"detail":"request timed out"}`),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", server.Addr, "throttle_backend", cfg.ThrottleBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown_failed", "error", err)
		}
		logger.Info("server_stopped_gracefully")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newLimiter picks the throttle store. The returned func releases it.
func newLimiter(cfg *config.Config, logger *slog.Logger) (throttle.Limiter, func(), error) {
	if cfg.ThrottleBackend != "redis" {
		return throttle.NewMemoryLimiter(), func() {}, nil
	}
	client, err := database.ConnectRedis(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("redis_connected", "url", cfg.RedisURL)
	return throttle.NewRedisLimiter(client), func() { client.Close() }, nil
}

func throttleRates(cfg *config.Config) (map[string]throttle.Rate, error) {
	rates := make(map[string]throttle.Rate)
	for scope, raw := range cfg.ThrottleRates() {
		requests, period, err := config.ParseRate(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", scope, err)
		}
		rates[scope] = throttle.Rate{Requests: requests, Period: period}
	}
	return rates, nil
}
