package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/inventorypulse/inventory-service/config"
	alertH "github.com/inventorypulse/inventory-service/internal/alert/handler"
	alertRepoPkg "github.com/inventorypulse/inventory-service/internal/alert/repository"
	alertUCPkg "github.com/inventorypulse/inventory-service/internal/alert/usecase"
	"github.com/inventorypulse/inventory-service/internal/auth"
	"github.com/inventorypulse/inventory-service/internal/importer"
	importH "github.com/inventorypulse/inventory-service/internal/importer/handler"
	importRepoPkg "github.com/inventorypulse/inventory-service/internal/importer/repository"
	importUCPkg "github.com/inventorypulse/inventory-service/internal/importer/usecase"
	invH "github.com/inventorypulse/inventory-service/internal/inventory/handler"
	invRepoPkg "github.com/inventorypulse/inventory-service/internal/inventory/repository"
	invUCPkg "github.com/inventorypulse/inventory-service/internal/inventory/usecase"
	prodH "github.com/inventorypulse/inventory-service/internal/product/handler"
	prodRepoPkg "github.com/inventorypulse/inventory-service/internal/product/repository"
	prodUCPkg "github.com/inventorypulse/inventory-service/internal/product/usecase"
	"github.com/inventorypulse/inventory-service/internal/server"
	userH "github.com/inventorypulse/inventory-service/internal/user/handler"
	userRepoPkg "github.com/inventorypulse/inventory-service/internal/user/repository"
	userUCPkg "github.com/inventorypulse/inventory-service/internal/user/usecase"
	"github.com/inventorypulse/inventory-service/pkg/broker"
	"github.com/inventorypulse/inventory-service/pkg/cache"
	"github.com/inventorypulse/inventory-service/pkg/logger"
	"github.com/inventorypulse/inventory-service/pkg/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.New(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	db, err := postgres.New(&postgres.Config{
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
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to postgres", zap.String("db", cfg.Postgres.DBName))

	// Redis is optional. Without it, preview batches live in process memory,
	// which is fine for a single instance.
	var redisClient *cache.RedisClient
	var batchStore importer.BatchStore
	redisClient, err = cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("redis unavailable, using in-memory batch store", zap.Error(err))
		redisClient = nil
		batchStore = importer.NewMemoryBatchStore(cfg.Import.BatchTTL)
	} else {
		defer redisClient.Close()
		batchStore = importer.NewRedisBatchStore(redisClient, cfg.Import.BatchTTL)
		appLogger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	var producer *broker.Producer
	if cfg.Kafka.Enabled {
		producer = broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		defer producer.Close()
		appLogger.Info("kafka producer ready", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TokenTTL)

	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	importRepo := importRepoPkg.NewPGRepository(db)
	alertRepo := alertRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)

	alertUC := alertUCPkg.NewAlertUseCase(alertRepo, producer, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, alertUC, appLogger)
	importUC := importUCPkg.NewImportUseCase(importRepo, batchStore, alertUC, producer, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, appLogger)

	handlers := &server.Handlers{
		Products:     prodH.NewProductHandler(prodUC, appLogger),
		Inventory:    invH.NewInventoryHandler(invUC, appLogger),
		Imports:      importH.NewImportHandler(importUC, cfg.Import.MaxFileSize, appLogger),
		Alerts:       alertH.NewAlertHandler(alertUC, appLogger),
		Users:        userH.NewUserHandler(userUC, appLogger),
		TokenManager: tokens,
	}

	addr := cfg.Server.HTTPPort
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}

	srv := server.New(addr, handlers, appLogger)

	go func() {
		appLogger.Info("starting http server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("shutdown error", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
