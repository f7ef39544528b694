package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"newsbrief/internal/config"
	hhttp "newsbrief/internal/handler/http"
	"newsbrief/internal/handler/http/headline"
	"newsbrief/internal/handler/http/middleware"
	"newsbrief/internal/handler/http/requestid"
	"newsbrief/internal/handler/http/summaries"
	pgRepo "newsbrief/internal/infra/adapter/persistence/postgres"
	"newsbrief/internal/infra/cache"
	"newsbrief/internal/infra/db"
	"newsbrief/internal/infra/fetcher"
	"newsbrief/internal/infra/provider"
	"newsbrief/internal/infra/summarizer"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/observability/tracing"
	headlinesUC "newsbrief/internal/usecase/headlines"
	summaryUC "newsbrief/internal/usecase/summary"
	pkgconfig "newsbrief/pkg/config"
)

func main() {
	logger := initLogger()
	validateJWTSecret(logger)

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Error("failed to load application configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, appCfg, database, version)

	runServer(logger, appCfg, components, version)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateJWTSecret checks JWT_SECRET at startup. The variable is optional;
// without it the API serves anonymous traffic only. When it is set, weak
// values are rejected so a misconfigured deployment fails fast instead of
// accepting forgeable tokens.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Warn("JWT_SECRET not set, requests with bearer tokens will be rejected")
		return
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds the assembled handler and the dependencies that
// outlive a single request.
type ServerComponents struct {
	Handler  http.Handler
	Provider *provider.Client
}

// setupServer wires the infrastructure, use cases, routes, and middleware
// into one HTTP handler.
func setupServer(logger *slog.Logger, appCfg *config.AppConfig, database *sql.DB, version string) *ServerComponents {
	logRepo := pgRepo.NewSummaryLogRepo(database)

	contentFetcher := buildContentFetcher(logger)
	extractive := buildSummarizer(logger)

	summaryCache := cache.NewSummaryCache(appCfg.Cache.SummaryTTL.Std())
	headlinesCache := cache.NewHeadlinesCache(appCfg.Cache.HeadlinesTTL.Std())

	providerCfg, err := provider.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load news provider configuration", slog.Any("error", err))
		os.Exit(1)
	}
	providerClient := provider.NewClient(providerCfg)
	logger.Info("news provider configured",
		slog.String("base_url", providerCfg.BaseURL),
		slog.Int("daily_quota", providerCfg.DailyQuota))

	summarySvc := summaryUC.NewService(contentFetcher, extractive, summaryCache, logRepo, summaryUC.Config{
		MinSourceWords: appCfg.Summary.MinSourceWords,
		Placeholder:    appCfg.Summary.Placeholder,
	})
	headlinesSvc := headlinesUC.NewService(providerClient, headlinesCache)

	rootMux := setupRoutes(database, version, providerClient, summarySvc, headlinesSvc)
	handler := applyMiddleware(logger, appCfg, rootMux)

	return &ServerComponents{
		Handler:  handler,
		Provider: providerClient,
	}
}

// buildContentFetcher creates the article text scraper, or returns nil when
// scraping is disabled. A nil fetcher degrades summaries to the description
// fallback rather than failing requests.
func buildContentFetcher(logger *slog.Logger) summaryUC.ContentFetcher {
	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load content fetch configuration", slog.Any("error", err))
		logger.Warn("article scraping disabled due to configuration error")
		return nil
	}
	if !cfg.Enabled {
		logger.Info("article scraping disabled")
		return nil
	}
	logger.Info("article scraping enabled",
		slog.Duration("timeout", cfg.Timeout),
		slog.Int64("max_body_size", cfg.MaxBodySize))
	return fetcher.NewReadabilityFetcher(cfg)
}

// buildSummarizer creates the extractive summarization pipeline.
func buildSummarizer(logger *slog.Logger) summaryUC.Summarizer {
	opts := summarizer.LoadOptionsFromEnv()
	ext, err := summarizer.NewExtractive(opts)
	if err != nil {
		logger.Error("invalid summarizer options", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("extractive summarizer configured",
		slog.Int("max_words", opts.MaxWords),
		slog.Int("max_sentences", opts.MaxSentences))
	return ext
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	database *sql.DB,
	version string,
	providerClient *provider.Client,
	summarySvc *summaryUC.Service,
	headlinesSvc *headlinesUC.Service,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Probes and metrics are served from the same mux; none of them require
	// authentication.
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version, Quota: providerClient})
	mux.Handle("/healthz", &hhttp.HealthHandler{DB: database, Version: version, Quota: providerClient})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	summaries.Register(mux, summarySvc)
	headline.Register(mux, headlinesSvc)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → Request ID → Tracing → Recovery → Logging
// → Rate Limit → Timeout → Input Validation → Body Limit → Metrics.
func applyMiddleware(logger *slog.Logger, appCfg *config.AppConfig, handler http.Handler) http.Handler {
	corsConfig := middleware.LoadCORSConfig()
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	rateLimit := pkgconfig.GetEnvInt("RATE_LIMIT_REQUESTS", 60)
	rateWindow := pkgconfig.GetEnvDuration("RATE_LIMIT_WINDOW", time.Minute)
	limiter := hhttp.NewRateLimiter(rateLimit, rateWindow)

	// Apply in reverse order (innermost to outermost).
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Timeout(appCfg.Server.RequestTimeout.Std())(chain)
	chain = limiter.Limit(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, appCfg *config.AppConfig, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              appCfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", appCfg.Server.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
