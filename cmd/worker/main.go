package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/outfit-assistant/internal/bootstrap"
	"github.com/kirillkom/outfit-assistant/internal/config"
	"github.com/kirillkom/outfit-assistant/internal/core/domain"
	"github.com/kirillkom/outfit-assistant/internal/observability/logging"
	"github.com/kirillkom/outfit-assistant/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger("outfit-worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logger.Error("bootstrap error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("outfit-worker")

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", workerMetrics.Handler())
	metricsMux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	metricsServer := &http.Server{
		Addr:         ":" + cfg.WorkerMetricsPort,
		Handler:      metricsMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker metrics server error", "error", err)
		}
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeItemUploaded(ctx, func(handlerCtx context.Context, event domain.ItemUploadedEvent) error {
		if !event.PublishedAt.IsZero() {
			workerMetrics.ObserveQueueLag("outfit-worker", time.Since(event.PublishedAt))
		}

		tagCtx, cancel := context.WithTimeout(handlerCtx, 2*time.Minute)
		defer cancel()

		start := time.Now()
		workerMetrics.StartItem()
		tagErr := app.TaggingUC.TagByID(tagCtx, event.ItemID)
		workerMetrics.FinishItem("outfit-worker", time.Since(start), tagErr)
		return tagErr
	})
	if err != nil {
		logger.Error("worker subscribe error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("worker metrics shutdown error", "error", err)
	}
}
