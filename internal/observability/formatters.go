// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI runs
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of an extracted profile.
func (p *Printer) PrintProfile(profile *types.ExtractedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf("Experience: %d years (%s)\n", *profile.ExperienceYears, profile.Seniority()))
	} else {
		sb.WriteString("Experience: not stated\n")
	}
	sb.WriteString(fmt.Sprintf("Tokens:     %d\n", profile.RawTokenCount))
	sb.WriteString("\n")

	if len(profile.Skills) == 0 {
		sb.WriteString("No recognized skills found")
	} else {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs ranked match results. The postings map supplies titles
// and companies for the scored job IDs.
func (p *Printer) PrintMatches(results []types.MatchResult, postings map[string]*types.JobPosting) {
	if len(results) == 0 {
		p.printBox("RANKED MATCHES", "No postings were scored")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total postings scored: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := results[i]

		label := result.JobID
		if posting := postings[result.JobID]; posting != nil {
			label = posting.Title
			if posting.Company != "" {
				label += " @ " + posting.Company
			}
		}

		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, label))
		sb.WriteString(fmt.Sprintf("    Score: %d\n", result.Score))
		if len(result.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Matched: %s\n", truncateList(result.MatchedSkills, 40)))
		}
		if len(result.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", truncateList(result.MissingSkills, 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more postings", len(results)-maxItemsToShow))
	}

	p.printBox("RANKED MATCHES", sb.String())
}

// PrintSkipped outputs postings that could not be scored.
func (p *Printer) PrintSkipped(skipped []types.SkippedJob) {
	if len(skipped) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range skipped {
		reason := s.Reason
		if len(reason) > 45 {
			reason = reason[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", s.JobID))
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
		if i < len(skipped)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKIPPED POSTINGS", strings.TrimSuffix(sb.String(), "\n"))
}

func truncateList(items []string, limit int) string {
	joined := strings.Join(items, ", ")
	if len(joined) > limit {
		joined = joined[:limit-3] + "..."
	}
	return joined
}
