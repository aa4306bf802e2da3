package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// FetchJobsRequest represents the request body for /jobs/fetch
type FetchJobsRequest struct {
	Roles     []string `json:"roles" validate:"required,min=1,dive,min=1"`
	Companies []string `json:"companies,omitempty"`
}

// FetchJobsResponse represents the response for /jobs/fetch
type FetchJobsResponse struct {
	Fetched  int                `json:"fetched"`
	Postings []types.JobPosting `json:"postings"`
}

// handleFetchJobs pulls recent postings from the configured source and stores
// them.
func (s *Server) handleFetchJobs(w http.ResponseWriter, r *http.Request) {
	var req FetchJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "at least one role keyword is required")
		return
	}

	postings, err := s.fetcher.FetchJobs(r.Context(), req.Roles, req.Companies)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "failed to fetch jobs: "+err.Error())
		return
	}

	stored := make([]types.JobPosting, 0, len(postings))
	for i := range postings {
		posting, err := s.store.UpsertJobPosting(r.Context(), &postings[i])
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "failed to store posting: "+err.Error())
			return
		}
		stored = append(stored, *posting)
	}

	s.jsonResponse(w, http.StatusOK, FetchJobsResponse{Fetched: len(stored), Postings: stored})
}

// IngestURLRequest represents the request body for /jobs/ingest-url
type IngestURLRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

// handleIngestJobURL fetches a single posting straight from its URL, extracts
// the description text, and stores it alongside API-fetched postings. Pages
// that render client-side go through the headless browser fallback when the
// server was started with it enabled.
func (s *Server) handleIngestJobURL(w http.ResponseWriter, r *http.Request) {
	var req IngestURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "a valid url is required")
		return
	}

	text, err := s.pages.JobDescription(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "failed to fetch posting: "+err.Error())
		return
	}
	if strings.TrimSpace(text) == "" {
		s.errorResponse(w, http.StatusUnprocessableEntity, "no description text could be extracted from the page")
		return
	}

	posting := &types.JobPosting{
		ID:          uuid.NewString(),
		ExternalID:  req.URL,
		Source:      "url",
		Title:       req.Title,
		Company:     req.Company,
		Description: text,
		ApplyURL:    req.URL,
	}

	stored, err := s.store.UpsertJobPosting(r.Context(), posting)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store posting: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, stored)
}

// handleListJobPostings returns recent stored postings
func (s *Server) handleListJobPostings(w http.ResponseWriter, r *http.Request) {
	postings, err := s.store.ListJobPostings(r.Context(), 100)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"postings": postings})
}

// handleGetJobPosting returns one stored posting by ID
func (s *Server) handleGetJobPosting(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job posting id")
		return
	}

	posting, err := s.store.GetJobPostingByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if posting == nil {
		s.errorResponse(w, http.StatusNotFound, "job posting not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, posting)
}
