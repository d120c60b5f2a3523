package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpchandler "github.com/Xausdorf/khqr-offline/internal/delivery/grpc"
	httpdelivery "github.com/Xausdorf/khqr-offline/internal/delivery/http"
	"github.com/Xausdorf/khqr-offline/internal/domain/repository"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/config"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/khqrsdk"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/logging"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/metrics"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/postgres"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/qrgenerator"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/redisstore"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/settings"
	"github.com/Xausdorf/khqr-offline/internal/usecase/form"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
	storeInitTimeout      = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	defer closeStore()
	logger.Info("settings store ready", zap.String("driver", cfg.StoreDriver))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	formUC := form.NewController(
		khqrsdk.NewBuilder(),
		qrgenerator.NewGenerator(cfg.QRScale),
		store,
		form.Settings{
			AccountID:          cfg.AccountID,
			AcquiringBank:      cfg.AcquiringBank,
			MerchantCity:       cfg.MerchantCity,
			ExpirationMinutes:  cfg.ExpirationMinutes,
			DefaultStoreName:   cfg.DefaultStoreName,
			DefaultAccountInfo: cfg.DefaultAccountInfo,
		},
		form.WithLogger(logger.Named("form")),
		form.WithMetrics(metrics.NewRecorder(reg)),
	)
	formUC.Restore(ctx)

	handler := httpdelivery.NewHandler(formUC, logger.Named("http"))
	router := httpdelivery.NewRouter(handler, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	grpcSrv := grpc.NewServer()
	grpchandler.RegisterFormServiceServer(grpcSrv, grpchandler.NewHandler(formUC, logger.Named("grpc")))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus(grpchandler.ServiceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	go func() {
		logger.Info("gRPC server starting", zap.String("addr", cfg.GRPCAddr))
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("grpc serve failed", zap.Error(err))
			cancel()
		}
	}()

	go func() {
		logger.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", zap.Error(serveErr))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	healthSrv.Shutdown()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	grpcSrv.GracefulStop()
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (repository.SettingsStore, func(), error) {
	initCtx, cancel := context.WithTimeout(ctx, storeInitTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case "memory":
		return settings.NewMemoryStore(), func() {}, nil
	case "file":
		return settings.NewFileStore(cfg.StorePath), func() {}, nil
	case "postgres":
		pool, err := postgres.NewPool(initCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewSettingsRepo(pool)
		if err := repo.Migrate(initCtx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil
	case "redis":
		store, err := redisstore.New(initCtx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
