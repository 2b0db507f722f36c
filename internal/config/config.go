package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// AnalysisConfig holds analysis behavior configuration
type AnalysisConfig struct {
	DefaultWindowDays int `mapstructure:"default_window_days"`
	MaxBatchSize      int `mapstructure:"max_batch_size"`
}

// NarrativeConfig holds LLM provider configuration
type NarrativeConfig struct {
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	GeminiBaseURL  string        `mapstructure:"gemini_base_url"`
	OpenAIAPIKey   string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL  string        `mapstructure:"openai_base_url"`
	OpenAIModel    string        `mapstructure:"openai_model"`
	RequestsPerMin int           `mapstructure:"requests_per_min"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// TelegramConfig holds Telegram digest configuration
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("MIRRORD")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Storage defaults
	v.SetDefault("storage.database_path", "./data/mirrord.db")

	// Analysis defaults
	v.SetDefault("analysis.default_window_days", 30)
	v.SetDefault("analysis.max_batch_size", 500)

	// Narrative defaults
	v.SetDefault("narrative.requests_per_min", 30)
	v.SetDefault("narrative.timeout", "20s")
	v.SetDefault("narrative.openai_model", "gpt-3.5-turbo")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Server config
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.RequestTimeout < 1*time.Second {
		return fmt.Errorf("server.request_timeout must be at least 1 second")
	}

	// Validate Storage config
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("storage.database_path is required")
	}

	// Validate Analysis config
	if c.Analysis.DefaultWindowDays < 1 {
		return fmt.Errorf("analysis.default_window_days must be at least 1")
	}
	if c.Analysis.MaxBatchSize < 1 {
		return fmt.Errorf("analysis.max_batch_size must be at least 1")
	}

	// Validate Narrative config
	if c.Narrative.RequestsPerMin < 0 {
		return fmt.Errorf("narrative.requests_per_min must not be negative")
	}
	if c.Narrative.Timeout < 1*time.Second {
		return fmt.Errorf("narrative.timeout must be at least 1 second")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
