package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Resume is a stored resume with its extracted profile.
type Resume struct {
	ID              uuid.UUID `json:"id"`
	Filename        string    `json:"filename"`
	ContentType     string    `json:"content_type"`
	Fingerprint     string    `json:"fingerprint"`
	RawText         string    `json:"raw_text,omitempty"`
	Skills          []string  `json:"skills"`
	ExperienceYears *int      `json:"experience_years,omitempty"`
	RawTokenCount   int       `json:"raw_token_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// ResumeCreateInput holds the fields for storing a new resume.
type ResumeCreateInput struct {
	Filename        string
	ContentType     string
	Fingerprint     string
	RawText         string
	Skills          []string
	ExperienceYears *int
	RawTokenCount   int
}

// CreateResume stores a resume and its extracted profile. Re-uploading
// content with a known fingerprint updates the stored metadata in place and
// returns the existing row's identity.
func (db *DB) CreateResume(ctx context.Context, input *ResumeCreateInput) (*Resume, error) {
	skillsJSON, err := json.Marshal(input.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	var r Resume
	var skillsOut []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, filename, content_type, fingerprint, raw_text,
		                      skills, experience_years, raw_token_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (fingerprint) DO UPDATE SET
		     filename = $2,
		     content_type = $3
		 RETURNING id, filename, content_type, fingerprint, skills,
		           experience_years, raw_token_count, created_at`,
		uuid.New(), input.Filename, input.ContentType, input.Fingerprint,
		input.RawText, skillsJSON, input.ExperienceYears, input.RawTokenCount,
	).Scan(&r.ID, &r.Filename, &r.ContentType, &r.Fingerprint, &skillsOut,
		&r.ExperienceYears, &r.RawTokenCount, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	if err := json.Unmarshal(skillsOut, &r.Skills); err != nil {
		return nil, fmt.Errorf("failed to parse stored skills: %w", err)
	}
	return &r, nil
}

// GetResumeByID retrieves a resume by its ID, or nil when absent.
func (db *DB) GetResumeByID(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	var skillsOut []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, filename, content_type, fingerprint, raw_text, skills,
		        experience_years, raw_token_count, created_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Filename, &r.ContentType, &r.Fingerprint, &r.RawText,
		&skillsOut, &r.ExperienceYears, &r.RawTokenCount, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	if err := json.Unmarshal(skillsOut, &r.Skills); err != nil {
		return nil, fmt.Errorf("failed to parse stored skills: %w", err)
	}
	return &r, nil
}

// ListResumes retrieves recent resumes without their raw text.
func (db *DB) ListResumes(ctx context.Context, limit int) ([]Resume, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, content_type, fingerprint, skills,
		        experience_years, raw_token_count, created_at
		 FROM resumes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		var skillsOut []byte
		if err := rows.Scan(&r.ID, &r.Filename, &r.ContentType, &r.Fingerprint,
			&skillsOut, &r.ExperienceYears, &r.RawTokenCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if err := json.Unmarshal(skillsOut, &r.Skills); err != nil {
			return nil, fmt.Errorf("failed to parse stored skills: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// DeleteResume removes a resume and, through the cascade, its match results.
// The bool reports whether a row existed.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
