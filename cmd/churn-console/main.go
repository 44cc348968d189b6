// cmd/churn-console/main.go
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"churn-console/internal/common/camunda"
	"churn-console/internal/common/config"
	"churn-console/internal/common/database"
	"churn-console/internal/common/logger"
	"churn-console/internal/common/observability"
	"churn-console/internal/console"
	"churn-console/internal/prediction"
	"churn-console/internal/submission"

	acr "churn-console/internal/workers/scoring/assess-churn-risk"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting churn console...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("predictionAPI", cfg.PredictionAPI.BaseURL),
	)

	obs := observability.New(cfg.App.Name, cfg.Tracing.OTLPEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()

	predictor, err := prediction.NewClient(
		cfg.PredictionAPI.BaseURL,
		config.GetDuration(cfg.PredictionAPI.Timeout),
		obs,
		log,
		prediction.WithStrictResponses(cfg.PredictionAPI.StrictResponses),
	)
	if err != nil {
		zapLog.Fatal("prediction client init failed", zap.Error(err))
	}

	// --- In-flight guard ---
	var guard submission.Guard = submission.NewMemoryGuard()
	if cfg.Submission.Guard == "redis" {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		guard = submission.NewRedisGuard(redis.GetClient(), config.GetDuration(cfg.Submission.InFlightTTL))
	}

	handler := submission.NewHandler(submission.LoadConfig(cfg.Submission), predictor, guard, obs, log)

	// --- Zeebe job worker ---
	var jobWorker *camunda.CamundaWorker
	if cfg.Camunda.Enabled {
		var zeebe *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClient(cfg.Camunda)
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer zeebe.Close()
		zapLog.Info("Zeebe client connected successfully")

		if config.IsWorkerEnabled(cfg, acr.TaskType) {
			wcfg := config.GetWorkerConfig(cfg, acr.TaskType)
			jobHandler := acr.NewHandler(acr.LoadConfig(wcfg), handler, log)
			jobWorker = camunda.NewWorker(
				zeebe.GetClient(),
				acr.TaskType,
				wcfg.MaxJobsActive,
				config.GetDuration(wcfg.Timeout),
				jobHandler,
				zapLog,
			)
			jobWorker.Start()
		} else {
			zapLog.Info("worker disabled", zap.String("taskType", acr.TaskType))
		}
	}

	// --- Console server ---
	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := console.NewServer(handler, predictor, console.Options{
		Version:           cfg.App.Version,
		PredictionBaseURL: predictor.BaseURL(),
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		MetricsEnabled:    cfg.Server.MetricsEnabled,
		SecureCookies:     cfg.Server.SecureCookies,
	}, log)
	if err != nil {
		zapLog.Fatal("console init failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("Console listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("console server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping console...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if jobWorker != nil {
		jobWorker.Stop(shutdownCtx)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down console server", zap.Error(err))
	}

	zapLog.Info("Churn console stopped")
}
