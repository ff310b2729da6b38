package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/database"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/grading"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/handler"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/logger"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/repository"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/router"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/service"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/validator"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting EvalAI Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	stateRepo := repository.NewRedisStateRepository(rdb)

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	persister := worker.NewStatePersister(stateRepo, log)
	go persister.Start(workerCtx)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService, log)
	notificationService := service.NewNotificationService(stateRepo, persister, rdb, log)
	classroomService := service.NewClassroomService(notificationService, log)
	preferenceService := service.NewPreferenceService(stateRepo, persister, log)

	gradingClient := grading.NewClient(cfg.GradingServiceURL, cfg.GradingAPIKey, cfg.GradingTimeout)
	gradingService := service.NewGradingService(cfg, gradingClient, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		Class:        handler.NewClassHandler(classroomService, log),
		Notification: handler.NewNotificationHandler(notificationService),
		Preference:   handler.NewPreferenceHandler(preferenceService),
		Grading:      handler.NewGradingHandler(gradingService, log),
		WS:           handler.NewWSHandler(rdb, notificationService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the persist worker and wait for its queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow the worker to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
