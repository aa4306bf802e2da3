// Package extraction turns normalized document text into structured
// skill/experience profiles. The same extractor serves resumes and job
// postings; the two sides of a match must carry the same signal shape to be
// comparable.
package extraction

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vocab"
)

// maxWindow is the widest token window resolved against the vocabulary,
// wide enough for multi-word skills like "machine learning" or
// "amazon web services".
const maxWindow = 3

// Extract builds an ExtractedProfile from normalized text. An empty token
// sequence yields an empty profile, not an error: an empty resume is valid
// input meaning "we found nothing", and callers decide what to do with it.
func Extract(nt *parsing.NormalizedText, v *vocab.Vocabulary, sourceID string) *types.ExtractedProfile {
	found := make(map[string]bool)
	tokens := nt.Tokens

	// Longest match wins: a 3-token hit at a position shadows the 1-token hit
	// starting there, so "machine" alone never swallows "machine learning".
	// After a hit the scan advances past the matched window.
	for i := 0; i < len(tokens); {
		matched := 0
		for width := min(maxWindow, len(tokens)-i); width >= 1; width-- {
			window := strings.Join(tokens[i:i+width], " ")
			if skill, ok := v.Resolve(window); ok {
				found[skill.Name] = true
				matched = width
				break
			}
		}
		if matched > 0 {
			i += matched
		} else {
			i++
		}
	}

	skills := make([]string, 0, len(found))
	for name := range found {
		skills = append(skills, name)
	}

	return types.NewExtractedProfile(sourceID, skills, experienceYears(tokens), nt.TokenCount())
}
