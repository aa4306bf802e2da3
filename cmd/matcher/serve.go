package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/vocab"
)

var (
	serveConfigPath string
	servePort       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes resume upload, job fetching, and match scoring endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	vocabulary, err := vocab.Load(cfg.VocabularyPath)
	if err != nil {
		return err
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(context.Background()); err != nil {
		return err
	}

	engine := matching.NewOrchestrator(vocabulary, matching.NewProfileCache(), matching.OrchestratorConfig{
		Policy: matching.Policy{
			MinJobTokens:            cfg.MinJobTokens,
			LowConfidencePenaltyPct: cfg.LowConfidencePenaltyPct,
		},
		MaxParallel: cfg.MaxConcurrentScores,
		Logger:      log,
	})

	fetcher := fetch.NewAdzunaClient(fetch.AdzunaOptions{
		AppID:  cfg.AdzunaAppID,
		AppKey: cfg.AdzunaAppKey,
		Logger: log,
	})

	pages := fetch.NewClient(fetch.ClientOptions{
		BrowserFallback: cfg.UseBrowser,
		Logger:          log,
	})

	srv := server.New(server.Config{
		Port:              cfg.Port,
		ExtractionTimeout: time.Duration(cfg.ExtractionTimeoutMS) * time.Millisecond,
	}, database, fetcher, pages, engine, log)

	return srv.Start()
}
