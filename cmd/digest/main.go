// Command digest runs a one-shot persona analysis for a user and delivers
// the resulting digest to Telegram.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/mirrorme/mirrord/internal/analysis"
	"github.com/mirrorme/mirrord/internal/config"
	"github.com/mirrorme/mirrord/internal/influence"
	"github.com/mirrorme/mirrord/internal/logger"
	"github.com/mirrorme/mirrord/internal/narrative"
	"github.com/mirrorme/mirrord/internal/storage"
	"github.com/mirrorme/mirrord/internal/telegram"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	userID     = flag.String("user", "", "User ID to analyze")
	daysBack   = flag.Int("days", 0, "Trailing window in days (default from config)")
	dryRun     = flag.Bool("dry-run", false, "Print the digest instead of sending it")
)

func main() {
	flag.Parse()

	if *userID == "" {
		log.Fatal("Missing required -user flag")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	store, err := storage.Open(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	days := *daysBack
	if days < 1 {
		days = cfg.Analysis.DefaultWindowDays
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := store.Records(ctx, storage.Query{
		UserID: *userID,
		Since:  time.Now().UTC().AddDate(0, 0, -days),
	})
	if err != nil {
		logger.Fatal("Failed to load records: %v", err)
	}
	logger.Info("Analyzing %d records for user %s (%d day window)", len(records), *userID, days)

	profile := analysis.BuildProfile(*userID, records)
	if len(records) > 0 {
		generator := narrative.NewGenerator(
			buildProviders(cfg.Narrative),
			cfg.Narrative.RequestsPerMin,
			cfg.Narrative.Timeout,
		)
		profile.Narrative, profile.NarrativeProvider = generator.PersonaSummary(
			ctx, profile.Topics, profile.Sentiment)
	}
	report := influence.AnalyzeTimeline(*userID, records, days)

	if *dryRun || !cfg.Telegram.Enabled {
		fmt.Printf("Digest for %s:\n\n%s\n", *userID, profile.Narrative)
		for _, chamber := range report.Patterns.EchoChambers {
			fmt.Printf("Warning: %s\n", chamber.Warning)
		}
		for _, bias := range report.Patterns.PlatformBias {
			fmt.Printf("Warning: %s\n", bias.Warning)
		}
		if !cfg.Telegram.Enabled && !*dryRun {
			logger.Warn("Telegram is disabled, digest printed instead")
		}
		return
	}

	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 3, time.Second)
	if err != nil {
		logger.Fatal("Failed to initialize Telegram client: %v", err)
	}
	if err := client.SendDigest(profile, report); err != nil {
		logger.Fatal("Failed to send digest: %v", err)
	}
	logger.Info("Digest sent for user %s", *userID)
}

func buildProviders(cfg config.NarrativeConfig) []narrative.Provider {
	var providers []narrative.Provider
	if cfg.GeminiAPIKey != "" {
		providers = append(providers,
			narrative.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.Timeout))
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers,
			narrative.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Timeout))
	}
	return providers
}
