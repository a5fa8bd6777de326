package main

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ntkrnl64/krnl-go/internal/app"
	"github.com/ntkrnl64/krnl-go/internal/config"
	grpcserver "github.com/ntkrnl64/krnl-go/internal/grpc"
	"github.com/ntkrnl64/krnl-go/internal/grpc/proto"
	"github.com/ntkrnl64/krnl-go/internal/log"
	"github.com/ntkrnl64/krnl-go/internal/middleware"
	"github.com/ntkrnl64/krnl-go/internal/service"
	"github.com/ntkrnl64/krnl-go/internal/storage"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

func main() {
	logger := log.NewLogger()
	defer func() {
		_ = logger.Sync()
	}()

	// Получаем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Выбираем хранилище: PostgreSQL, BadgerDB или память
	store, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	svc := service.NewService(store, cfg.JWTSecret, logger)
	appInstance := app.NewApp(svc, cfg.NoTokenCheck, logger)

	if cfg.NoTokenCheck {
		logger.Warn("Session token checks are disabled")
	}

	// Создаём маршрутизатор
	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.GzipMiddleware)

	// Публичные маршруты
	r.Get("/api/status", appInstance.HandleStatus)
	r.Post("/api/setup", appInstance.HandleSetup)
	r.Post("/api/auth", appInstance.HandleAuth)
	r.Post("/api/logout", appInstance.HandleLogout)
	r.Get("/api/resolve/{id}", appInstance.HandleResolve)
	r.Get("/{id}", appInstance.HandleRedirect)

	// Маршруты администратора
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(svc, cfg.NoTokenCheck, logger))
		r.Post("/api/password", appInstance.HandlePassword)
		r.Get("/api/links", appInstance.HandleListLinks)
		r.Post("/api/links", appInstance.HandleCreateLink)
		r.Get("/api/links/{id}", appInstance.HandleGetLink)
		r.Put("/api/links/{id}", appInstance.HandleUpdateLink)
		r.Delete("/api/links/{id}", appInstance.HandleDeleteLink)
		r.Post("/api/links/{id}/aliases", appInstance.HandleAddAlias)
		r.Delete("/api/links/{id}/aliases/{aliasId}", appInstance.HandleRemoveAlias)
		r.Post("/api/merge", appInstance.HandleMerge)
		r.Get("/api/config", appInstance.HandleGetConfig)
		r.Put("/api/config", appInstance.HandleUpdateConfig)
	})

	// Внутренние маршруты для доверенной подсети
	r.Group(func(r chi.Router) {
		r.Use(middleware.TrustedSubnetMiddleware(cfg.TrustedSubnet, logger))
		r.Get("/api/internal/stats", appInstance.HandleStats)
	})

	// Запускаем gRPC сервер в отдельной горутине
	go func() {
		listener, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Fatal("Failed to listen gRPC address", zap.Error(err))
		}

		grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(
			grpcserver.LoggingInterceptor(logger),
			grpcserver.AuthInterceptor(svc, cfg.NoTokenCheck, logger),
			grpcserver.TrustedSubnetInterceptor(cfg.TrustedSubnet, logger),
		))
		proto.RegisterLinkServiceServer(grpcSrv, grpcserver.NewServer(svc, logger))

		logger.Info("Starting gRPC server", zap.String("address", cfg.GRPCAddr))
		if err := grpcSrv.Serve(listener); err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("address", cfg.RunAddr))
	if err := http.ListenAndServe(cfg.RunAddr, r); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}

// newStore создаёт хранилище согласно конфигурации
func newStore(cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch {
	case cfg.DatabaseDSN != "":
		db, err := storage.NewDB(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL storage")
		return storage.NewPostgresStore(db, logger), nil
	case cfg.StoragePath != "":
		logger.Info("Using BadgerDB storage", zap.String("path", cfg.StoragePath))
		return storage.NewBadgerStore(cfg.StoragePath, logger)
	default:
		logger.Info("Using in-memory storage")
		return storage.NewMemoryStore(), nil
	}
}
