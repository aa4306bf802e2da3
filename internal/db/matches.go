package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// StoredMatch is one persisted match result row.
type StoredMatch struct {
	ID            uuid.UUID `json:"id"`
	ResumeID      uuid.UUID `json:"resume_id"`
	JobID         uuid.UUID `json:"job_id"`
	Score         int       `json:"score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
	Explanation   []string  `json:"explanation"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaveMatchResults persists a match run's results. Re-matching the same
// resume against a posting overwrites the previous row; the score is a pure
// function of the two documents, so the newest row is always the truth.
func (db *DB) SaveMatchResults(ctx context.Context, resumeID uuid.UUID, results []types.MatchResult) error {
	for _, result := range results {
		jobID, err := uuid.Parse(result.JobID)
		if err != nil {
			return fmt.Errorf("invalid job id %q: %w", result.JobID, err)
		}

		matchedJSON, err := json.Marshal(result.MatchedSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal matched skills: %w", err)
		}
		missingJSON, err := json.Marshal(result.MissingSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal missing skills: %w", err)
		}
		explanationJSON, err := json.Marshal(result.Explanation)
		if err != nil {
			return fmt.Errorf("failed to marshal explanation: %w", err)
		}

		_, err = db.pool.Exec(ctx,
			`INSERT INTO match_results (id, resume_id, job_id, score, matched_skills, missing_skills, explanation)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (resume_id, job_id) DO UPDATE SET
			     score = $4,
			     matched_skills = $5,
			     missing_skills = $6,
			     explanation = $7,
			     created_at = NOW()`,
			uuid.New(), resumeID, jobID, result.Score, matchedJSON, missingJSON, explanationJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to save match result: %w", err)
		}
	}
	return nil
}

// ListMatchesForResume retrieves stored matches for a resume, best first.
func (db *DB) ListMatchesForResume(ctx context.Context, resumeID uuid.UUID) ([]StoredMatch, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_id, job_id, score, matched_skills, missing_skills, explanation, created_at
		 FROM match_results WHERE resume_id = $1 ORDER BY score DESC, created_at ASC`,
		resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []StoredMatch
	for rows.Next() {
		var m StoredMatch
		var matchedJSON, missingJSON, explanationJSON []byte
		if err := rows.Scan(&m.ID, &m.ResumeID, &m.JobID, &m.Score,
			&matchedJSON, &missingJSON, &explanationJSON, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if err := json.Unmarshal(matchedJSON, &m.MatchedSkills); err != nil {
			return nil, fmt.Errorf("failed to parse matched skills: %w", err)
		}
		if err := json.Unmarshal(missingJSON, &m.MissingSkills); err != nil {
			return nil, fmt.Errorf("failed to parse missing skills: %w", err)
		}
		if err := json.Unmarshal(explanationJSON, &m.Explanation); err != nil {
			return nil, fmt.Errorf("failed to parse explanation: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}
