package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mirrorme/mirrord/internal/config"
	"github.com/mirrorme/mirrord/internal/logger"
	"github.com/mirrorme/mirrord/internal/narrative"
	"github.com/mirrorme/mirrord/internal/server"
	"github.com/mirrorme/mirrord/internal/storage"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	// Initialize storage
	store, err := storage.Open(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage: %v", err)
		}
	}()

	// Initialize narrative providers
	generator := narrative.NewGenerator(
		buildProviders(cfg.Narrative),
		cfg.Narrative.RequestsPerMin,
		cfg.Narrative.Timeout,
	)

	// Initialize HTTP server
	srv := server.NewServer(cfg.Server, cfg.Analysis, store, generator)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		logger.Fatal("HTTP server failed: %v", err)
	case <-sigChan:
		logger.Info("Shutdown signal received, cleaning up...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server: %v", err)
	}
	logger.Info("Service stopped")
}

// buildProviders assembles the narrative provider chain from config.
// Gemini first, OpenAI as fallback; either may be absent.
func buildProviders(cfg config.NarrativeConfig) []narrative.Provider {
	var providers []narrative.Provider
	if cfg.GeminiAPIKey != "" {
		providers = append(providers,
			narrative.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.Timeout))
		logger.Info("Gemini narrative provider enabled")
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers,
			narrative.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Timeout))
		logger.Info("OpenAI narrative provider enabled")
	}
	if len(providers) == 0 {
		logger.Warn("No narrative providers configured, using template summaries")
	}
	return providers
}
