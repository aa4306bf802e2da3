package matching

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Policy holds the scorer's confidence constants. They are configuration with
// documented defaults rather than hidden magic numbers.
type Policy struct {
	// MinJobTokens is the token count below which a job posting's extraction
	// is considered low-confidence.
	MinJobTokens int

	// LowConfidencePenaltyPct is the percentage by which the base score is
	// reduced for a low-confidence posting.
	LowConfidencePenaltyPct int
}

// DefaultPolicy returns the documented default scoring policy: postings under
// 20 tokens lose 25% of their base score.
func DefaultPolicy() Policy {
	return Policy{
		MinJobTokens:            20,
		LowConfidencePenaltyPct: 25,
	}
}

// Score computes the match between a resume profile and a job profile. It is
// a pure function: no I/O, no randomness, and two calls with identical inputs
// produce identical results down to the byte.
//
// The policy is fixed: matchedSkills = R ∩ J, missingSkills = J − R,
// baseScore = 100·|matched|/|J|, reduced by the low-confidence penalty when
// the posting is too short, clamped to [0, 100] and rounded half-up.
func Score(resume, job *types.ExtractedProfile, policy Policy) *types.MatchResult {
	matched, missing := intersectAndDiff(resume.Skills, job.Skills)

	var score float64
	var explanation []string

	if len(job.Skills) == 0 {
		// Degenerate but valid: a posting with nothing extractable cannot be
		// matched against, so it scores zero rather than erroring.
		score = 0
		explanation = append(explanation, "job requires no identifiable skills")
	} else {
		score = 100 * float64(len(matched)) / float64(len(job.Skills))
		explanation = append(explanation,
			fmt.Sprintf("matched %d of %d required skills", len(matched), len(job.Skills)))
	}

	// The penalty only applies when there is a score to reduce; a degenerate
	// posting already reads as unmatched and gets no confidence entry.
	if len(job.Skills) > 0 && job.RawTokenCount < policy.MinJobTokens {
		score -= score * float64(policy.LowConfidencePenaltyPct) / 100
		explanation = append(explanation,
			fmt.Sprintf("low-confidence extraction: job posting has %d tokens (minimum %d), score reduced by %d%%",
				job.RawTokenCount, policy.MinJobTokens, policy.LowConfidencePenaltyPct))
	}

	if score < 0 {
		score = 0
		explanation = append(explanation, "score clamped to [0, 100]")
	} else if score > 100 {
		score = 100
		explanation = append(explanation, "score clamped to [0, 100]")
	}

	return &types.MatchResult{
		JobID:         job.SourceID,
		Score:         roundHalfUp(score),
		MatchedSkills: matched,
		MissingSkills: missing,
		Explanation:   explanation,
	}
}

// roundHalfUp rounds to the nearest integer with a deterministic tie-break
// toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// intersectAndDiff returns job ∩ resume and job − resume as sorted slices.
// Both inputs are already sorted by construction.
func intersectAndDiff(resumeSkills, jobSkills []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}

	inResume := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		inResume[s] = true
	}

	for _, s := range jobSkills {
		if inResume[s] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}
