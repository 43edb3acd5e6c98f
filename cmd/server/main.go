package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/alex28786/the-reef/common/id"
	"github.com/alex28786/the-reef/common/logger"
	"github.com/alex28786/the-reef/common/otel"
	"github.com/alex28786/the-reef/core/config"
	"github.com/alex28786/the-reef/core/db"
	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/http/middleware"
	httprouter "github.com/alex28786/the-reef/internal/http/router"
	"github.com/alex28786/the-reef/internal/service"
	"github.com/alex28786/the-reef/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "reef starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.SnowflakeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "database connected")

	locker, closeLocker, err := newLocker(ctx, cfg.Redis)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer closeLocker()

	backend, err := analysis.NewBackend(ctx, cfg, &http.Client{})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create analysis backend", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())

	prompts, err := analysis.NewPromptCatalog(stores.SystemPrompts())
	if err != nil {
		slog.ErrorContext(ctx, "failed to load prompt catalog", "error", err)
		os.Exit(1)
	}

	enricher := analysis.NewEnricher(backend, prompts, analysis.Config{
		AllowMock: cfg.Analysis.AllowMock,
		Timeout:   cfg.Analysis.Timeout,
	})
	slog.InfoContext(ctx, "analysis ready",
		"backend", cfg.Analysis.Backend,
		"source", backend.Source(),
		"model", backend.Model(),
		"allow_mock", cfg.Analysis.AllowMock)

	services := service.NewServices(stores, service.NewTxRunner(database), enricher, prompts, locker, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// resolve may run two enrichments back to back
		WriteTimeout: 2*cfg.Analysis.Timeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// newLocker uses redis when configured so replicas share enrichment locks.
// Without it, locks are per process.
func newLocker(ctx context.Context, cfg config.RedisConfig) (service.Locker, func(), error) {
	if !cfg.Enabled() {
		slog.InfoContext(ctx, "redis disabled, using in-process enrichment locks")
		return service.NewLocalLocker(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("pinging redis: %w", err)
	}
	slog.InfoContext(ctx, "redis connected", "key_prefix", cfg.KeyPrefix)

	return service.NewRedisLocker(client, cfg.KeyPrefix), func() { _ = client.Close() }, nil
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		DashboardURL: cfg.DashboardURL,
		IsProduction: cfg.IsProduction(),
		AdminAPIKey:  cfg.AdminAPIKey,
	})

	return router
}

const banner = `
██████╗ ███████╗███████╗███████╗
██╔══██╗██╔════╝██╔════╝██╔════╝
██████╔╝█████╗  █████╗  █████╗  
██╔══██╗██╔══╝  ██╔══╝  ██╔══╝  
██║  ██║███████╗███████╗██║     
╚═╝  ╚═╝╚══════╝╚══════╝╚═╝     
`
