package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAndValidate(t *testing.T) {
	// Create temp config file
	content := `
server:
  host: "127.0.0.1"
  port: 9100
  request_timeout: 30s
  allowed_origins:
    - "http://localhost:3000"
    - "chrome-extension://*"

storage:
  database_path: "./data/test.db"

analysis:
  default_window_days: 14
  max_batch_size: 200

narrative:
  gemini_api_key: "test_gemini_key"
  openai_model: "gpt-3.5-turbo"
  requests_per_min: 10
  timeout: 15s

telegram:
  bot_token: "test_token"
  chat_id: "test_chat_id"
  enabled: true

logging:
  level: "info"
  format: "json"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test Load
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify values
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Unexpected host: %s", cfg.Server.Host)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Unexpected port: %d", cfg.Server.Port)
	}

	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 allowed origins, got %d", len(cfg.Server.AllowedOrigins))
	}

	if cfg.Analysis.DefaultWindowDays != 14 {
		t.Errorf("Unexpected window days: %d", cfg.Analysis.DefaultWindowDays)
	}

	if cfg.Narrative.Timeout != 15*time.Second {
		t.Errorf("Unexpected narrative timeout: %v", cfg.Narrative.Timeout)
	}

	// Test Validate
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `
storage:
  database_path: "./data/test.db"
`
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Analysis.DefaultWindowDays != 30 {
		t.Errorf("Expected default window 30, got %d", cfg.Analysis.DefaultWindowDays)
	}
	if cfg.Narrative.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("Unexpected default model: %s", cfg.Narrative.OpenAIModel)
	}
	if cfg.Telegram.Enabled {
		t.Error("Expected telegram disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed on defaults: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Host:           "0.0.0.0",
				Port:           8000,
				RequestTimeout: 30 * time.Second,
			},
			Storage: StorageConfig{
				DatabasePath: "./data/test.db",
			},
			Analysis: AnalysisConfig{
				DefaultWindowDays: 30,
				MaxBatchSize:      500,
			},
			Narrative: NarrativeConfig{
				RequestsPerMin: 30,
				Timeout:        20 * time.Second,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Storage.DatabasePath = "" },
			wantErr: true,
		},
		{
			name:    "invalid window days",
			mutate:  func(c *Config) { c.Analysis.DefaultWindowDays = 0 },
			wantErr: true,
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Narrative.RequestsPerMin = -1 },
			wantErr: true,
		},
		{
			name: "missing telegram token when enabled",
			mutate: func(c *Config) {
				c.Telegram.Enabled = true
				c.Telegram.ChatID = "chat"
			},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
