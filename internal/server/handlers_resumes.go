package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxUploadBytes caps resume upload size.
const maxUploadBytes = 10 << 20

// ResumeResponse represents a stored resume in API responses.
type ResumeResponse struct {
	ID              string    `json:"id"`
	Filename        string    `json:"filename"`
	ContentType     string    `json:"content_type"`
	Fingerprint     string    `json:"fingerprint"`
	Skills          []string  `json:"skills"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	Seniority       string    `json:"seniority,omitempty"`
	RawTokenCount   int       `json:"raw_token_count"`
	CreatedAt       time.Time `json:"created_at"`
	Warnings        []string  `json:"warnings,omitempty"`
}

func resumeResponse(r *db.Resume, warnings []string) ResumeResponse {
	profile := types.ExtractedProfile{
		Skills:          r.Skills,
		ExperienceYears: r.ExperienceYears,
	}
	return ResumeResponse{
		ID:              r.ID.String(),
		Filename:        r.Filename,
		ContentType:     r.ContentType,
		Fingerprint:     r.Fingerprint,
		Skills:          r.Skills,
		ExperienceYears: r.ExperienceYears,
		Seniority:       profile.Seniority(),
		RawTokenCount:   r.RawTokenCount,
		CreatedAt:       r.CreatedAt,
		Warnings:        warnings,
	}
}

// handleUploadResume ingests a resume document, extracts its profile, and
// stores both. Accepts multipart form uploads under "file" or a raw document
// body with a Content-Type header.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	data, filename, contentType, err := readUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(data) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "empty upload")
		return
	}

	text, err := ingestion.ExtractText(data, contentType)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	nt, err := parsing.Normalize([]byte(text), filename)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.extractionTimeout)
	defer cancel()

	profile, err := s.engine.ExtractProfile(ctx, filename, []byte(text))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	stored, err := s.store.CreateResume(r.Context(), &db.ResumeCreateInput{
		Filename:        filename,
		ContentType:     contentType,
		Fingerprint:     nt.Fingerprint(),
		RawText:         text,
		Skills:          profile.Skills,
		ExperienceYears: profile.ExperienceYears,
		RawTokenCount:   profile.RawTokenCount,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store resume: "+err.Error())
		return
	}

	var warnings []string
	if profile.Empty() {
		warnings = append(warnings, "no recognized skills were found in the document")
	}

	s.jsonResponse(w, http.StatusCreated, resumeResponse(stored, warnings))
}

// handleGetResume returns a stored resume by ID
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
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

	s.jsonResponse(w, http.StatusOK, resumeResponse(resume, nil))
}

// handleDeleteResume removes a stored resume; its match results go with it.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	deleted, err := s.store.DeleteResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListResumes returns recent resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.store.ListResumes(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]ResumeResponse, 0, len(resumes))
	for i := range resumes {
		out = append(out, resumeResponse(&resumes[i], nil))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": out})
}

// readUpload pulls the document bytes out of either a multipart form or the
// raw request body.
func readUpload(r *http.Request) (data []byte, filename, contentType string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if mediaType := r.Header.Get("Content-Type"); len(mediaType) >= 19 && mediaType[:19] == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", "", &ErrValidation{Field: "file", Message: "missing multipart file field"}
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", "", err
		}
		return data, header.Filename, header.Header.Get("Content-Type"), nil
	}

	data, err = io.ReadAll(r.Body)
	if err != nil {
		return nil, "", "", err
	}
	return data, "upload", r.Header.Get("Content-Type"), nil
}
