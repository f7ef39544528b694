package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"newsbrief/internal/config"
	"newsbrief/internal/infra/cache"
	"newsbrief/internal/infra/provider"
	workerPkg "newsbrief/internal/infra/worker"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/observability/metrics"
	headlinesUC "newsbrief/internal/usecase/headlines"
)

// The worker keeps the headline cache warm so reader-facing requests rarely
// pay a provider round trip. Each run walks the configured categories with
// bounded parallelism; failures in one category do not stop the others.
func main() {
	logger := initLogger()

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Error("failed to load application configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("max_concurrent", workerConfig.MaxConcurrent),
		slog.Duration("prefetch_timeout", workerConfig.PrefetchTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	svc, categories := setupHeadlinesService(logger, appCfg)

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(ctx, logger, svc, categories, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// setupHeadlinesService builds the provider-backed headlines service and
// resolves the category set to prefetch.
func setupHeadlinesService(logger *slog.Logger, appCfg *config.AppConfig) (*headlinesUC.Service, []string) {
	providerCfg, err := provider.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load news provider configuration", slog.Any("error", err))
		os.Exit(1)
	}
	providerClient := provider.NewClient(providerCfg)

	headlinesCache := cache.NewHeadlinesCache(appCfg.Cache.HeadlinesTTL.Std())
	svc := headlinesUC.NewService(providerClient, headlinesCache)

	categories := appCfg.Prefetch.Categories
	if len(categories) == 0 {
		categories = headlinesUC.Categories
	}
	logger.Info("prefetch categories resolved",
		slog.Int("count", len(categories)),
		slog.Any("categories", categories))

	return svc, categories
}

// startCronWorker starts the cron scheduler and runs the prefetch job on the
// configured schedule. An immediate first run warms the cache at startup
// instead of waiting for the first tick.
func startCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	svc *headlinesUC.Service,
	categories []string,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runPrefetchJob(ctx, logger, svc, categories, cfg, workerMetrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker marked as ready")
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	go runPrefetchJob(ctx, logger, svc, categories, cfg, workerMetrics)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Info("worker stopped")
}

// runPrefetchJob executes one prefetch pass over all categories.
func runPrefetchJob(
	ctx context.Context,
	logger *slog.Logger,
	svc *headlinesUC.Service,
	categories []string,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
) {
	startTime := time.Now()
	workerMetrics.RecordJobRun("started")
	logger.Info("prefetch started", slog.Int("categories", len(categories)))

	jobCtx, cancel := context.WithTimeout(ctx, cfg.PrefetchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(jobCtx)
	g.SetLimit(cfg.MaxConcurrent)

	var prefetched atomic.Int64
	for _, category := range categories {
		g.Go(func() error {
			articles, err := svc.Top(gctx, category)
			if err != nil {
				metrics.RecordPrefetchError(category)
				logger.Warn("category prefetch failed",
					slog.String("category", category),
					slog.Any("error", err))
				// One failing category must not abort the rest of the run.
				return nil
			}
			metrics.RecordHeadlinesPrefetched(category, len(articles))
			prefetched.Add(1)
			logger.Debug("category prefetched",
				slog.String("category", category),
				slog.Int("articles", len(articles)))
			return nil
		})
	}
	_ = g.Wait()

	duration := time.Since(startTime)
	warmed := int(prefetched.Load())
	success := warmed == len(categories)
	metrics.RecordPrefetchRun(success, duration)
	workerMetrics.RecordJobDuration(duration.Seconds())
	workerMetrics.RecordCategoriesPrefetched(warmed)
	if success {
		workerMetrics.RecordJobRun("success")
		workerMetrics.RecordLastSuccess()
	} else {
		workerMetrics.RecordJobRun("failure")
	}

	logger.Info("prefetch completed",
		slog.Int("prefetched", warmed),
		slog.Int("failed", len(categories)-warmed),
		slog.Duration("duration", duration))
}
