package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jwaldner/options-screener/internal/api"
	"github.com/jwaldner/options-screener/internal/config"
	"github.com/jwaldner/options-screener/internal/handlers"
	"github.com/jwaldner/options-screener/internal/logger"
	"github.com/jwaldner/options-screener/internal/services"
	"github.com/jwaldner/options-screener/internal/watchlist"
	"github.com/jwaldner/options-screener/web"
)

func main() {
	cfg := config.Load()

	// Initialize proper logging with config level and file path
	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Close()
	log.Infof("🚀 Options Screener starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - Backend API calls will be logged to %s\n", cfg.Logging.LogFile)
	}

	// Create backend client
	log.Infof("📡 Backend API - Base URL: %s (timeout %v)", cfg.API.BaseURL, cfg.Timeout())
	baseClient := api.NewClient(cfg.API.BaseURL, cfg.Timeout())
	perf := api.NewPerformanceWrapper(baseClient, cfg.SlowRequestThreshold())
	defer perf.Close()
	backend := api.NewExpirationsCache(perf, cfg.ExpirationsCacheTTL())

	// Watchlist and default screener tickers
	list := watchlist.NewService(cfg.Screener.WatchlistFile)
	symbolService := services.NewSymbolService(cfg, list)
	log.Infof("📋 Screener tickers: %s", symbolService.GetSymbolSource())

	requestService := services.NewRequestService(services.ScreenerDefaults{
		MinVolume:       cfg.Screener.MinVolume,
		MinOpenInterest: cfg.Screener.MinOpenInterest,
		MaxBidAskSpread: cfg.Screener.MaxBidAskSpread,
		OptionType:      cfg.Screener.OptionType,
	})

	templates, err := handlers.ParseTemplates(web.Templates())
	if err != nil {
		log.Fatalf("❌ Failed to load templates: %v", err)
	}

	// Initialize handlers
	router := handlers.NewRouter(handlers.Router{
		Pages:     handlers.NewPageHandler(backend, cfg, requestService, symbolService, list, templates),
		Proxy:     handlers.NewProxyHandler(backend),
		Watchlist: handlers.NewWatchlistHandler(list, symbolService),
		Static:    web.Static(),
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
		log.Infof("🌐 HTTP server started on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("❌ Shutdown error: %v", err)
	}
	log.Info(perf.Report())
}
