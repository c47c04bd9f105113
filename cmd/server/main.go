package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	app "github.com/storefront/bridge/internal/application/storefront"
	"github.com/storefront/bridge/internal/infrastructure/cache"
	"github.com/storefront/bridge/internal/infrastructure/config"
	"github.com/storefront/bridge/internal/infrastructure/logger"
	"github.com/storefront/bridge/internal/infrastructure/magento"
	"github.com/storefront/bridge/internal/infrastructure/session"
	"github.com/storefront/bridge/internal/infrastructure/telemetry"
	"github.com/storefront/bridge/internal/interfaces/graphql"
	"github.com/storefront/bridge/internal/interfaces/http/handler"
	"github.com/storefront/bridge/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("backend", cfg.Magento.BaseURL),
	)

	// Initialize tracing
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Session store and catalog cache. With Redis enabled both share one
	// client; otherwise both fall back to in-process memory, which is fine
	// for a single instance but loses sessions on restart.
	var (
		sessionStore session.Store
		catalogCache cache.Cache
		redisClient  *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()

		sessionStore = session.NewRedisStoreWithClient(redisClient, "", cfg.Session.TTL)
		catalogCache = cache.NewRedisCache(redisClient, "")
		log.Info("Redis connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		sessionStore = session.NewMemoryStore(cfg.Session.TTL)
		catalogCache = cache.NewMemoryCache()
		log.Warn("Redis disabled, using in-memory session store and cache")
	}
	if !cfg.Cache.Enabled {
		catalogCache = nil
	}

	// Commerce backend client
	platform, err := magento.NewClient(&magento.Config{
		BaseURL:          cfg.Magento.BaseURL,
		StoreCode:        cfg.Magento.StoreCode,
		AdminUsername:    cfg.Magento.AdminUsername,
		AdminPassword:    cfg.Magento.AdminPassword,
		IntegrationToken: cfg.Magento.IntegrationToken,
		AdminTokenTTL:    cfg.Magento.AdminTokenTTL,
		Timeout:          cfg.Magento.Timeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to create commerce backend client", zap.Error(err))
	}

	// Application services
	catalogService := app.NewCatalogService(platform, catalogCache, cfg.Cache.CatalogTTL, log)
	cartService := app.NewCartService(platform, log)
	checkoutService := app.NewCheckoutService(platform, log)
	customerService := app.NewCustomerService(platform, log)
	orderService := app.NewOrderService(platform, log)

	// GraphQL schema
	resolver := graphql.NewResolver(catalogService, cartService, checkoutService, customerService, orderService, log)
	schema, err := graphql.NewSchema(resolver)
	if err != nil {
		log.Fatal("Failed to build GraphQL schema", zap.Error(err))
	}

	// Readiness checks
	checks := []handler.ReadinessCheck{
		{
			Name: "backend",
			Check: func(ctx context.Context) error {
				_, err := platform.StoreConfig(ctx)
				return err
			},
		},
	}
	if redisClient != nil {
		checks = append(checks, handler.ReadinessCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}

	// HTTP engine
	engine := router.New(router.Deps{
		Config:       cfg,
		Logger:       log,
		SessionStore: sessionStore,
		CookieCodec:  session.NewCookieCodec(cfg.Session.Secret, cfg.App.Name, cfg.Session.TTL),
		GraphQL:      handler.NewGraphQLHandler(schema, log),
		System:       handler.NewSystemHandler(version, checks...),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
