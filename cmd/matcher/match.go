package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vocab"
)

var (
	matchResumePath string
	matchJobsPath   string
	matchVocabPath  string
	matchJSONOut    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume against job postings from a file",
	Long: `Run one offline match: extract a profile from a resume document (PDF,
DOCX, or plain text), score it against postings from a JSON file, and print
the ranked results. No database or network access is needed.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchResumePath, "resume", "", "Path to resume document (required)")
	matchCmd.Flags().StringVar(&matchJobsPath, "jobs", "", "Path to JSON file with job postings (required)")
	matchCmd.Flags().StringVar(&matchVocabPath, "vocab", config.DefaultVocabularyPath, "Path to skill vocabulary")
	matchCmd.Flags().BoolVar(&matchJSONOut, "json", false, "Emit raw JSON instead of formatted output")
	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("jobs")
	rootCmd.AddCommand(matchCmd)
}

// jobsFile is the offline posting input format.
type jobsFile struct {
	Postings []types.JobPosting `json:"postings"`
}

func runMatch(_ *cobra.Command, _ []string) error {
	vocabulary, err := vocab.Load(matchVocabPath)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(matchResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	text, err := ingestion.ExtractText(raw, "")
	if err != nil {
		return err
	}

	postings, err := loadPostings(matchJobsPath)
	if err != nil {
		return err
	}

	engine := matching.NewOrchestrator(vocabulary, matching.NewProfileCache(), matching.OrchestratorConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profile, err := engine.ExtractProfile(ctx, filepath.Base(matchResumePath), []byte(text))
	if err != nil {
		return err
	}

	results, skipped, err := engine.MatchAll(ctx, profile, postings)
	if err != nil {
		return err
	}

	if matchJSONOut {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"profile": profile,
			"matches": results,
			"skipped": skipped,
		})
	}

	byID := make(map[string]*types.JobPosting, len(postings))
	for i := range postings {
		byID[postings[i].ID] = &postings[i]
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintProfile(profile)
	printer.PrintMatches(results, byID)
	printer.PrintSkipped(skipped)
	return nil
}

// loadPostings reads postings from either a {"postings": [...]} document or a
// bare JSON array. Postings without IDs get one assigned.
func loadPostings(path string) ([]types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var file jobsFile
	if err := json.Unmarshal(data, &file); err != nil || len(file.Postings) == 0 {
		var bare []types.JobPosting
		if err := json.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("failed to parse jobs file: %w", err)
		}
		file.Postings = bare
	}

	for i := range file.Postings {
		if file.Postings[i].ID == "" {
			file.Postings[i].ID = uuid.NewString()
		}
		if file.Postings[i].Source == "" {
			file.Postings[i].Source = "file"
		}
	}
	return file.Postings, nil
}
