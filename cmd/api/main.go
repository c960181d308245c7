package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	deliveryHTTP "wallet-wrapped/internal/adapter/delivery/http"
	"wallet-wrapped/internal/adapter/explorer"
	"wallet-wrapped/internal/adapter/rpc"
	"wallet-wrapped/internal/adapter/storage/memory"
	"wallet-wrapped/internal/adapter/storage/registry"
	"wallet-wrapped/internal/application"
	"wallet-wrapped/internal/config"
	"wallet-wrapped/internal/logger"
)

func main() {
	// --- Configuration ---
	cfgPath := "configs"
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	// --- Logger ---
	appLogger, err := logger.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}
	defer appLogger.Sync() // Ensure logs are flushed before exiting
	appLogger.Info("Logger initialized", zap.Any("config", cfg.Logger))

	if cfg.Explorer.APIKey == config.DefaultAPIKey {
		appLogger.Warn("No explorer API key configured, using the shared placeholder key; expect rate limiting")
	}

	// --- Dependency Injection (Manual) ---
	appLogger.Info("Initializing dependencies...")

	chainRepo := registry.NewRepository(cfg.Registry, appLogger)
	cacheRepo := memory.NewCacheRepository(cfg.Cache, appLogger)
	rpcChecker := rpc.NewChecker(cfg.Checker.GetTimeout(), appLogger)
	explorerClient := explorer.NewClient(cfg.Explorer, appLogger)

	chainService := application.NewChainService(chainRepo, cacheRepo, rpcChecker, appLogger, *cfg)
	// A broken registry file fails startup.
	if _, err := chainService.GetAllChains(context.Background()); err != nil {
		appLogger.Fatal("Failed to load chain registry", zap.Error(err))
	}

	aggregator := application.NewAggregator(explorerClient, chainService, cfg.Aggregator, appLogger)
	walletService := application.NewWalletService(aggregator, appLogger)

	handler := deliveryHTTP.NewWalletHandler(walletService, chainService, appLogger)

	// --- HTTP Router & Server ---
	appLogger.Info("Setting up HTTP router...")
	r := router.New()
	deliveryHTTP.RegisterRoutes(r, handler, appLogger)

	server := &fasthttp.Server{
		Handler: deliveryHTTP.LoggingMiddleware(r.Handler, appLogger.Named("HTTP")),
		Name:    cfg.App.Name,
	}

	serverAddr := ":" + cfg.Server.Port
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("address", serverAddr))
		if err := server.ListenAndServe(serverAddr); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
