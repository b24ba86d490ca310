// Command dashboard запускает HTTP и gRPC серверы дашборда коротких ссылок.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/redis/go-redis/v9"
	"github.com/tempizhere/shortdash/internal/app"
	"github.com/tempizhere/shortdash/internal/client"
	"github.com/tempizhere/shortdash/internal/config"
	dashgrpc "github.com/tempizhere/shortdash/internal/grpc"
	dashlog "github.com/tempizhere/shortdash/internal/log"
	"github.com/tempizhere/shortdash/internal/repository"
	"github.com/tempizhere/shortdash/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := dashlog.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	code, err := run(cfg, logger)
	if err != nil {
		logger.Fatal("Dashboard failed", zap.Error(err))
	}
	if code != 0 {
		logger.Fatal("Dashboard stopped with errors", zap.Int("exit_code", code))
	}
	logger.Info("Dashboard stopped")
}

// run собирает зависимости, запускает серверы и ждёт сигнала завершения
func run(cfg *config.Config, logger *zap.Logger) (int, error) {
	ctx := context.Background()
	var closers []func() error

	var (
		repo repository.Repository
		db   repository.Database
	)
	switch {
	case cfg.DatabaseDSN != "":
		sqlDB, err := app.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return 1, fmt.Errorf("open database: %w", err)
		}
		pgRepo, err := repository.NewPostgresRepository(sqlDB, logger)
		if err != nil {
			_ = sqlDB.Close()
			return 1, fmt.Errorf("init postgres repository: %w", err)
		}
		repo, db = pgRepo, sqlDB
		closers = append(closers, sqlDB.Close)
		logger.Info("Using PostgreSQL repository")
	case cfg.FileStoragePath != "":
		fileRepo, err := repository.NewFileRepository(cfg.FileStoragePath, logger)
		if err != nil {
			return 1, fmt.Errorf("init file repository: %w", err)
		}
		repo = fileRepo
		logger.Info("Using file repository", zap.String("path", cfg.FileStoragePath))
	default:
		repo = repository.NewMemoryRepository()
		logger.Info("Using in-memory repository")
	}

	var snapshots repository.SnapshotStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return 1, fmt.Errorf("connect redis: %w", err)
		}
		snapshots = repository.NewRedisSnapshotStore(rdb, "shortdash:", cfg.SnapshotTTL, logger)
		closers = append(closers, rdb.Close)
		logger.Info("Using Redis snapshot store", zap.String("addr", cfg.RedisAddr))
	} else {
		snapshots = repository.NewMemorySnapshotStore()
	}

	api := client.New(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	svc, err := service.NewService(api, repo, snapshots, cfg, logger)
	if err != nil {
		return 1, fmt.Errorf("init service: %w", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: app.NewRouter(app.NewApp(svc, db, logger), cfg.TrustedSubnet, logger),
	}
	go func() {
		logger.Info("Starting HTTP server", zap.String("address", cfg.RunAddr), zap.String("api", cfg.APIBaseURL))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}()

	grpcServer := dashgrpc.NewGRPCServer(svc, cfg.TrustedSubnet, logger)
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = httpServer.Close()
		return 1, fmt.Errorf("listen gRPC: %w", err)
	}
	go func() {
		logger.Info("Starting gRPC server", zap.String("address", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server failed", zap.Error(err))
		}
	}()

	shutdown := func(shutdownCtx context.Context) error {
		logger.Info("Shutting down servers")
		errs := []error{httpServer.Shutdown(shutdownCtx)}
		grpcServer.GracefulStop()
		for _, closeFn := range closers {
			errs = append(errs, closeFn())
		}
		return errors.Join(errs...)
	}

	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"dashboard": shutdown,
	})
	return <-wait, nil
}
