package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Drivers
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	// Instrumentation
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	// Interne
	"github.com/webwebweb5/societify/config"
	httpadapter "github.com/webwebweb5/societify/internal/adapters/primary/http"
	"github.com/webwebweb5/societify/internal/adapters/secondary/blobstore"
	"github.com/webwebweb5/societify/internal/adapters/secondary/eventbroker"
	"github.com/webwebweb5/societify/internal/adapters/secondary/repository"
	"github.com/webwebweb5/societify/internal/adapters/secondary/security"
	"github.com/webwebweb5/societify/internal/core/services"
)

const tokenExpiry = 15 * 24 * time.Hour

func main() {
	// 1. Config & Logger
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)
	slog.Info("🚀 Starting Societify", "env", cfg.Env, "port", cfg.HTTPPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	// 3. Infrastructure: PostgreSQL (Driven Adapter)
	poolCfg, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		slog.Error("Invalid DB URL", "error", err)
		os.Exit(1)
	}
	poolCfg.ConnConfig.Tracer = otelpgx.NewTracer()

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		slog.Error("Unable to create connection pool", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to PostgreSQL")

	if err := repository.EnsureSchema(ctx, dbpool); err != nil {
		slog.Error("Unable to ensure schema", "error", err)
		os.Exit(1)
	}

	// 4. Infrastructure: Redis (Driven Adapter)
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := redisotel.InstrumentTracing(rdb); err != nil {
		panic(err)
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()
	slog.Info("✅ Connected to Redis")

	// 5. Infrastructure: Event Broker NATS (Driven Adapter)
	broker, err := eventbroker.NewNatsBroker(cfg.NatsUrl)
	if err != nil {
		slog.Error("Unable to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer broker.Close()
	slog.Info("✅ Connected to NATS")

	// 6. Adapters secondaires restants
	userRepo := repository.NewPostgresUserRepo(dbpool)
	postRepo := repository.NewPostgresPostRepo(dbpool)
	notifRepo := repository.NewPostgresNotificationRepo(dbpool)
	feedCache := repository.NewRedisFeedCache(rdb, cfg.FeedCacheTTL)
	blobs := blobstore.NewCloudinaryStore(cfg.CloudinaryCloud, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	hasher := security.NewArgon2Hasher(nil)

	tokens, err := security.NewJWTProvider(cfg.JWTSecret, tokenExpiry)
	if err != nil {
		slog.Error("Unable to init token provider", "error", err)
		os.Exit(1)
	}

	// 7. Initialisation du Core
	identitySvc := services.NewIdentityService(userRepo, hasher, tokens, blobs)
	socialSvc := services.NewSocialGraphService(userRepo, notifRepo, broker)
	engagementSvc := services.NewEngagementService(postRepo, userRepo, notifRepo, broker)
	postSvc := services.NewPostService(postRepo, userRepo, blobs, broker)
	feedSvc := services.NewFeedService(postRepo, userRepo, feedCache)
	suggestionSvc := services.NewSuggestionService(userRepo, cfg.SuggestedPoolSize, cfg.SuggestedDisplayCount)
	notificationSvc := services.NewNotificationService(notifRepo, userRepo)

	// 8. Adapter primaire HTTP (Driving Adapter)
	secureCookies := cfg.Env == "prod"
	handler := httpadapter.NewRouter(cfg.Env, cfg.ServiceName, tokens, httpadapter.Handlers{
		Auth:          httpadapter.NewAuthHandler(identitySvc, tokens, secureCookies),
		Users:         httpadapter.NewUserHandler(identitySvc, socialSvc, suggestionSvc),
		Posts:         httpadapter.NewPostHandler(postSvc, engagementSvc, feedSvc),
		Notifications: httpadapter.NewNotificationHandler(notificationSvc),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler,
	}

	// 9. Démarrage Graceful
	go func() {
		slog.Info("📡 HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("👋 Server exited")
}

// --- Helpers ---

func initLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Env == "local" {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if cfg.Env == "local" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func initTracer(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, _ := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
