package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/chedi-ouerghi/shop-mobilenative/pkg/database"
	"github.com/chedi-ouerghi/shop-mobilenative/pkg/health"
	"github.com/chedi-ouerghi/shop-mobilenative/pkg/httpclient"
	pkgkafka "github.com/chedi-ouerghi/shop-mobilenative/pkg/kafka"
	"github.com/chedi-ouerghi/shop-mobilenative/pkg/tracing"

	"github.com/chedi-ouerghi/shop-mobilenative/internal/config"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/domain"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/event"
	handler "github.com/chedi-ouerghi/shop-mobilenative/internal/handler/http"
	postgresrepo "github.com/chedi-ouerghi/shop-mobilenative/internal/repository/postgres"
	redisrepo "github.com/chedi-ouerghi/shop-mobilenative/internal/repository/redis"
	"github.com/chedi-ouerghi/shop-mobilenative/internal/service"
	"github.com/chedi-ouerghi/shop-mobilenative/migrations"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	pool            *pgxpool.Pool
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize tracing if enabled.
	var tracingShutdown func(context.Context) error
	if cfg.TracingEnabled {
		tcfg := tracing.DefaultConfig("storefront")
		tcfg.Enabled = true
		tcfg.OTLPEndpoint = cfg.OTLPEndpoint
		tcfg.Environment = cfg.Environment
		shutdown, err := tracing.InitTracer(ctx, tcfg)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		tracingShutdown = shutdown
		logger.Info("tracing initialized", slog.String("endpoint", cfg.OTLPEndpoint))
	}

	// Initialize the PostgreSQL pool for the catalog store.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPassword
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSLMode

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize the Redis client for the cart store.
	rdCfg := database.DefaultRedisConfig()
	rdCfg.Host = cfg.RedisHost
	rdCfg.Port = cfg.RedisPort
	rdCfg.Password = cfg.RedisPass
	rdCfg.DB = cfg.RedisDB

	rdb, err := database.NewRedisClient(ctx, &rdCfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", rdCfg.Addr()),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize the Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	cartRepo := redisrepo.NewCartRepository(rdb, cartTTL)
	productRepo := postgresrepo.NewProductRepository(pool)
	eventProducer := event.NewProducer(producer, logger)

	var promo service.PromoResolver = service.NoDiscountResolver{}
	if cfg.PromoServiceURL != "" {
		client := httpclient.New(httpclient.DefaultConfig())
		cb := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("promo"), logger)
		promo = service.NewHTTPPromoResolver(cb, cfg.PromoServiceURL, logger)
		logger.Info("promo resolver configured", slog.String("url", cfg.PromoServiceURL))
	}

	catalogService := service.NewCatalogService(productRepo, eventProducer, logger)
	if err := catalogService.Load(ctx); err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cartService := service.NewCartService(cartRepo, eventProducer, promo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(
		cartService,
		catalogService,
		domain.DefaultStoreLocations(),
		healthHandler,
		logger,
		cfg.PprofCIDRs,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		pool:            pool,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
