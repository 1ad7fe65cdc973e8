package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront/config"
	"github.com/fekuna/omnipos-storefront/internal/apiclient"
	"github.com/fekuna/omnipos-storefront/internal/appstate"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/location"
	"github.com/fekuna/omnipos-storefront/internal/querycache"
	"github.com/fekuna/omnipos-storefront/internal/server"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/database/postgres"
	"github.com/fekuna/omnipos-storefront/pkg/i18n"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/search"

	authH "github.com/fekuna/omnipos-storefront/internal/auth/handler"
	authUCPkg "github.com/fekuna/omnipos-storefront/internal/auth/usecase"

	checkoutH "github.com/fekuna/omnipos-storefront/internal/checkout/handler"
	checkoutRepoPkg "github.com/fekuna/omnipos-storefront/internal/checkout/repository"
	checkoutUCPkg "github.com/fekuna/omnipos-storefront/internal/checkout/usecase"

	locationH "github.com/fekuna/omnipos-storefront/internal/location/handler"

	orderH "github.com/fekuna/omnipos-storefront/internal/order/handler"
	orderListenerPkg "github.com/fekuna/omnipos-storefront/internal/order/listener"
	orderPubPkg "github.com/fekuna/omnipos-storefront/internal/order/publisher"
	orderUCPkg "github.com/fekuna/omnipos-storefront/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-storefront/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront/internal/product/usecase"

	shopH "github.com/fekuna/omnipos-storefront/internal/shop/handler"
	shopUCPkg "github.com/fekuna/omnipos-storefront/internal/shop/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 2.5 Initialize i18n
	i18n.Init()
	locales, _ := filepath.Glob(filepath.Join(cfg.Server.LocalesDir, "active.*.json"))
	for _, f := range locales {
		if err := i18n.Load(f); err != nil {
			appLogger.Warn("Failed to load locale file", zap.String("file", f), zap.Error(err))
		}
	}

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.BackendTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.OrderEventsTopic,
	})
	defer kafkaProducer.Close()
	appLogger.Info("Kafka configured",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("consume", cfg.Kafka.BackendTopic),
		zap.String("produce", cfg.Kafka.OrderEventsTopic),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 6. Initialize Elasticsearch (optional)
	var productIndex prodUCPkg.Index
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, product search will filter in memory", zap.Error(err))
	} else {
		productIndex = esClient
		if err := prodUCPkg.EnsureIndex(ctx, esClient); err != nil {
			appLogger.Warn("Could not create product index", zap.Error(err))
		}
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 7. Backend API client and shared state
	backend, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Invalid backend configuration", zap.Error(err))
	}

	sessionTTL := time.Duration(cfg.JWT.TTLHours) * time.Hour
	queryCache := querycache.New(querycache.NewRedisStore(redisClient), time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second, appLogger)
	stateStore := appstate.NewStore(appstate.NewRedisPersister(redisClient, sessionTTL), appLogger)
	issuer := auth.NewTokenIssuer(cfg.JWT.SecretKey, sessionTTL)

	// 8. Initialize Repositories
	checkoutRepo := checkoutRepoPkg.NewPGRepository(db)
	draftRepo := prodRepoPkg.NewMemoryDraftRepository(time.Duration(cfg.Checkout.DraftTTLMinutes) * time.Minute)

	// 9. Initialize UseCases
	locationUC := location.NewUseCase(backend, queryCache, appLogger)
	authUC := authUCPkg.NewAuthUseCase(backend, issuer, stateStore, queryCache, appLogger)
	shopUC := shopUCPkg.NewShopUseCase(backend, stateStore, queryCache, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(backend, queryCache, productIndex, appLogger)
	draftUC := prodUCPkg.NewDraftUseCase(draftRepo, prodUC, backend, time.Duration(cfg.Checkout.UploadTimeoutSecs)*time.Second, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(backend, locationUC, queryCache, appLogger)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(
		checkoutRepo,
		backend,
		locationUC,
		queryCache,
		orderPubPkg.NewOrderPublisher(kafkaProducer),
		redisClient,
		checkoutUCPkg.Options{
			OTPMinLength:     cfg.Checkout.OTPMinLength,
			OTPResend:        time.Duration(cfg.Checkout.OTPResendSeconds) * time.Second,
			ConfirmationPath: cfg.Checkout.ConfirmationPath,
		},
		appLogger,
	)

	// 10. Initialize Listeners
	orderListener := orderListenerPkg.NewOrderListener(kafkaConsumer, orderUC, appLogger)
	go orderListener.Start(ctx)
	go sweepCheckoutSessions(ctx, checkoutRepo, time.Duration(cfg.Checkout.SessionTTLHours)*time.Hour, appLogger)

	// 11. Initialize Handlers and Router
	router := server.NewRouter(server.Options{
		Release:        cfg.Server.AppEnv == "production",
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, server.Deps{
		Issuer:   issuer,
		Store:    stateStore,
		Verifier: backend,
		Auth:     authH.NewAuthHandler(authUC, appLogger),
		Shops:    shopH.NewShopHandler(shopUC, appLogger),
		Products: prodH.NewProductHandler(prodUC, draftUC, appLogger),
		Orders:   orderH.NewOrderHandler(orderUC, appLogger),
		Checkout: checkoutH.NewCheckoutHandler(checkoutUC, appLogger),
		Location: locationH.NewLocationHandler(locationUC, appLogger),
	}, appLogger)

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 12. Start gRPC health server
	lis, err := net.Listen("tcp", normalizePort(cfg.Server.GRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

type staleSweeper interface {
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// sweepCheckoutSessions drops abandoned checkouts once they are older than ttl.
func sweepCheckoutSessions(ctx context.Context, repo staleSweeper, ttl time.Duration, log logger.ZapLogger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteStale(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Error("Failed to sweep checkout sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("Swept abandoned checkout sessions", zap.Int64("count", n))
			}
		}
	}
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
