// Package types provides type definitions for structured data used throughout the resume matcher.
package types

import "sort"

// Seniority levels inferred from years of experience.
const (
	SeniorityJunior = "junior"
	SeniorityMid    = "mid"
	SenioritySenior = "senior"
)

// ExtractedProfile is the structured output of extraction for one document
// (a resume or a job posting). It is never mutated after creation.
type ExtractedProfile struct {
	SourceID string `json:"source_id"`

	// Skills holds canonical skill names, sorted lexicographically so that
	// identical inputs always serialize identically.
	Skills []string `json:"skills"`

	// ExperienceYears is nil when no experience hint was found in the text.
	// Absence and zero are distinct: a resume saying "0 years" carries a
	// pointer to zero, a resume saying nothing carries nil.
	ExperienceYears *int `json:"experience_years,omitempty"`

	// RawTokenCount is the token count reported by the normalizer, used as a
	// confidence signal when scoring.
	RawTokenCount int `json:"raw_token_count"`
}

// NewExtractedProfile builds a profile from an unordered skill set.
func NewExtractedProfile(sourceID string, skills []string, experienceYears *int, rawTokenCount int) *ExtractedProfile {
	sorted := make([]string, len(skills))
	copy(sorted, skills)
	sort.Strings(sorted)
	return &ExtractedProfile{
		SourceID:        sourceID,
		Skills:          sorted,
		ExperienceYears: experienceYears,
		RawTokenCount:   rawTokenCount,
	}
}

// HasSkill reports whether the profile contains the given canonical skill.
func (p *ExtractedProfile) HasSkill(name string) bool {
	i := sort.SearchStrings(p.Skills, name)
	return i < len(p.Skills) && p.Skills[i] == name
}

// Empty reports whether extraction found no skills at all. An empty profile
// is valid input ("we found nothing"), not an error; callers surface it to
// the user as a low-quality-input signal.
func (p *ExtractedProfile) Empty() bool {
	return len(p.Skills) == 0
}

// Seniority infers a seniority level from the extracted years of experience.
// Returns the empty string when no experience hint was found.
func (p *ExtractedProfile) Seniority() string {
	if p.ExperienceYears == nil {
		return ""
	}
	switch years := *p.ExperienceYears; {
	case years < 2:
		return SeniorityJunior
	case years <= 5:
		return SeniorityMid
	default:
		return SenioritySenior
	}
}
