// Package config provides configuration loading and validation for the
// matcher service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultPort                = 8080
	DefaultVocabularyPath      = "configs/vocabulary.json"
	DefaultMinJobTokens        = 20
	DefaultLowConfidencePct    = 25
	DefaultExtractionTimeoutMS = 5000
	DefaultMaxConcurrentScores = 8
)

// Config holds everything the service and CLI need. All fields are optional
// in the file; missing values come from environment variables or defaults.
type Config struct {
	Port           int    `json:"port,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty"`
	VocabularyPath string `json:"vocabulary_path,omitempty"`

	// Adzuna credentials; without them job fetching serves mock postings.
	AdzunaAppID  string `json:"adzuna_app_id,omitempty"`
	AdzunaAppKey string `json:"adzuna_app_key,omitempty"`

	// Scoring policy knobs.
	MinJobTokens            int `json:"min_job_tokens,omitempty"`
	LowConfidencePenaltyPct int `json:"low_confidence_penalty_pct,omitempty"`

	// Engine limits.
	ExtractionTimeoutMS int `json:"extraction_timeout_ms,omitempty"`
	MaxConcurrentScores int `json:"max_concurrent_scores,omitempty"`

	// Acquisition behavior.
	UseBrowser bool `json:"use_browser,omitempty"`

	// Logging.
	LogJSON  bool `json:"log_json,omitempty"`
	LogDebug bool `json:"log_debug,omitempty"`
}

// Load reads a JSON config file. An empty path yields an empty config so
// environment variables and defaults can fill everything in.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

// applyEnv overlays environment variables onto file values. The environment
// wins, matching how the service is deployed.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("VOCABULARY_PATH"); v != "" {
		c.VocabularyPath = v
	}
	if v := os.Getenv("ADZUNA_APP_ID"); v != "" {
		c.AdzunaAppID = v
	}
	if v := os.Getenv("ADZUNA_APP_KEY"); v != "" {
		c.AdzunaAppKey = v
	}
	if v := os.Getenv("USE_BROWSER"); v == "true" || v == "1" {
		c.UseBrowser = true
	}
	if v := os.Getenv("LOG_JSON"); v == "true" || v == "1" {
		c.LogJSON = true
	}
	if v := os.Getenv("LOG_DEBUG"); v == "true" || v == "1" {
		c.LogDebug = true
	}
}

// ApplyDefaults fills zero fields with documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.VocabularyPath == "" {
		c.VocabularyPath = DefaultVocabularyPath
	}
	if c.MinJobTokens == 0 {
		c.MinJobTokens = DefaultMinJobTokens
	}
	if c.LowConfidencePenaltyPct == 0 {
		c.LowConfidencePenaltyPct = DefaultLowConfidencePct
	}
	if c.ExtractionTimeoutMS == 0 {
		c.ExtractionTimeoutMS = DefaultExtractionTimeoutMS
	}
	if c.MaxConcurrentScores == 0 {
		c.MaxConcurrentScores = DefaultMaxConcurrentScores
	}
}

// Validate checks numeric ranges and referenced files.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [1, 65535]")
	}
	if c.MinJobTokens < 0 {
		return fmt.Errorf("config error: 'min_job_tokens' must be non-negative")
	}
	if c.LowConfidencePenaltyPct < 0 || c.LowConfidencePenaltyPct > 100 {
		return fmt.Errorf("config error: 'low_confidence_penalty_pct' must be in [0, 100]")
	}
	if c.ExtractionTimeoutMS < 0 {
		return fmt.Errorf("config error: 'extraction_timeout_ms' must be non-negative")
	}
	if c.MaxConcurrentScores < 1 {
		return fmt.Errorf("config error: 'max_concurrent_scores' must be positive")
	}
	if c.VocabularyPath != "" {
		if _, err := os.Stat(c.VocabularyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.VocabularyPath)
		}
	}
	return nil
}
