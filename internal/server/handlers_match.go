package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

// MatchRequest represents the request body for /match. With no job_ids the
// resume is matched against every stored posting.
type MatchRequest struct {
	ResumeID string   `json:"resume_id" validate:"required,uuid"`
	JobIDs   []string `json:"job_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// MatchEntry is one ranked job in the match response.
type MatchEntry struct {
	JobID         string   `json:"job_id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	ApplyURL      string   `json:"apply_url"`
	Explanation   []string `json:"explanation"`
}

// MatchResponse represents the response for /match
type MatchResponse struct {
	ResumeID string             `json:"resume_id"`
	Matches  []MatchEntry       `json:"matches"`
	Skipped  []types.SkippedJob `json:"skipped,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
}

// handleMatch scores a stored resume against job postings and returns them
// ranked best first.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "resume_id must be a UUID; job_ids must be UUIDs")
		return
	}

	resumeID, _ := uuid.Parse(req.ResumeID)
	resume, err := s.store.GetResumeByID(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	postings, err := s.matchPostings(r.Context(), req.JobIDs)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile := types.NewExtractedProfile(resume.ID.String(), resume.Skills,
		resume.ExperienceYears, resume.RawTokenCount)

	ctx, cancel := context.WithTimeout(r.Context(), s.extractionTimeout)
	defer cancel()

	results, skipped, err := s.engine.MatchAll(ctx, profile, postings)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.store.SaveMatchResults(r.Context(), resume.ID, results); err != nil {
		// Results are still valid; persistence is best effort here.
		s.log.Warn("failed to persist match results", zap.Error(err))
	}

	byID := make(map[string]*types.JobPosting, len(postings))
	for i := range postings {
		byID[postings[i].ID] = &postings[i]
	}

	matches := make([]MatchEntry, 0, len(results))
	for _, result := range results {
		posting := byID[result.JobID]
		if posting == nil {
			continue
		}
		matches = append(matches, MatchEntry{
			JobID:         result.JobID,
			Title:         posting.Title,
			Company:       posting.Company,
			Score:         result.Score,
			MatchedSkills: result.MatchedSkills,
			MissingSkills: result.MissingSkills,
			ApplyURL:      posting.ApplyURL,
			Explanation:   result.Explanation,
		})
	}

	var warnings []string
	if profile.Empty() {
		warnings = append(warnings, "resume has no recognized skills; all scores reflect missing requirements only")
	}

	s.jsonResponse(w, http.StatusOK, MatchResponse{
		ResumeID: req.ResumeID,
		Matches:  matches,
		Skipped:  skipped,
		Warnings: warnings,
	})
}

// handleListResumeMatches returns the persisted match results for a resume,
// best first, so a match run can be read back without re-scoring.
func (s *Server) handleListResumeMatches(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	resume, err := s.store.GetResumeByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	matches, err := s.store.ListMatchesForResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if matches == nil {
		matches = []db.StoredMatch{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume_id": id.String(),
		"matches":   matches,
	})
}

// matchPostings resolves the posting set for a match request: the named IDs,
// or every stored posting when none were given.
func (s *Server) matchPostings(ctx context.Context, jobIDs []string) ([]types.JobPosting, error) {
	if len(jobIDs) == 0 {
		return s.store.ListJobPostings(ctx, 100)
	}

	postings := make([]types.JobPosting, 0, len(jobIDs))
	for _, raw := range jobIDs {
		id, _ := uuid.Parse(raw)
		posting, err := s.store.GetJobPostingByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if posting == nil {
			return nil, &ErrNotFound{Resource: "job posting", ID: raw}
		}
		postings = append(postings, *posting)
	}
	return postings, nil
}
