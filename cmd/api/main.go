// Command api is the Pokeview API server.
//
// Usage:
//
//	pokeview-api
//	API_PORT=8080 PREFERENCE_STORE=redis REDIS_URL=redis://localhost:6379/0 pokeview-api

// @title Pokeview API
// @version 1.0.0
// @description Pokémon detail aggregation API: localized detail payloads merged from entity, species, type and evolution records, plus list pages, summary counters, UI labels and per-client preferences.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Pokeview
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/pokeview/internal/api"
	"github.com/albapepper/pokeview/internal/api/handler"
	"github.com/albapepper/pokeview/internal/cache"
	"github.com/albapepper/pokeview/internal/catalog"
	"github.com/albapepper/pokeview/internal/config"
	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/pokeapi"
	"github.com/albapepper/pokeview/internal/prefs"
	"github.com/albapepper/pokeview/internal/translate"

	_ "github.com/albapepper/pokeview/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load(config.StoreMemory)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Preference store
	logger.Info("Opening preference store...", "backend", cfg.PreferenceStore)
	store, err := prefs.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open preference store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Upstream clients
	client := pokeapi.NewClient(pokeapi.Options{
		BaseURL:           cfg.PokeAPIBaseURL,
		RequestsPerMinute: cfg.PokeAPIRequestsPerMinute,
		Timeout:           cfg.UpstreamTimeout,
		Cache:             appCache,
		Logger:            logger,
	})
	var translator translate.Translator = translate.Disabled{}
	if cfg.TranslateEnabled {
		translator = translate.NewClient(cfg.TranslateURL, cfg.TranslateAPIKey, cfg.TranslateTimeout, appCache, logger)
	}
	logger.Info("Upstream configured",
		"pokeapi", cfg.PokeAPIBaseURL,
		"translation", cfg.TranslateEnabled,
		"fanout", cfg.FanoutLimit)

	// Create router
	router := api.NewRouter(handler.Deps{
		Assembler: detail.NewAssembler(client, detail.NewLocalizer(translator, cfg.TranslateTimeout, logger), cfg.FanoutLimit, logger),
		Catalog:   catalog.NewService(client, cfg.FanoutLimit, logger),
		Prefs:     store,
		Cache:     appCache,
	}, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Pokeview API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
