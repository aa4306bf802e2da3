package types

// MatchResult is the scorer's verdict for one (resume, job) pair. It is
// immutable once created; the orchestrator orders results by Score and the
// boundary layer serializes them.
type MatchResult struct {
	JobID string `json:"job_id"`

	// Score is the final match score, an integer in [0, 100].
	Score int `json:"score"`

	// MatchedSkills and MissingSkills are sorted canonical skill names.
	// MatchedSkills is the intersection of resume and job skills;
	// MissingSkills is what the job requires that the resume lacks.
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`

	// Explanation lists, in firing order, the scoring rules that applied:
	// match ratio, then confidence adjustment, then clamping. Rules that did
	// not fire produce no entry.
	Explanation []string `json:"explanation"`
}

// SkippedJob records a posting that was omitted from a match run because its
// extraction failed. No placeholder score is ever fabricated for such pairs.
type SkippedJob struct {
	JobID  string `json:"job_id"`
	Reason string `json:"reason"`
}
