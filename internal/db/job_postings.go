package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/types"
)

const jobPostingColumns = `id, external_id, source, title, company, description, apply_url, posted_at`

func scanJobPosting(row pgx.Row) (*types.JobPosting, error) {
	var p types.JobPosting
	var id uuid.UUID
	if err := row.Scan(&id, &p.ExternalID, &p.Source, &p.Title, &p.Company,
		&p.Description, &p.ApplyURL, &p.PostedAt); err != nil {
		return nil, err
	}
	p.ID = id.String()
	return &p, nil
}

// UpsertJobPosting stores a posting, updating in place when the same
// source/external_id pair was seen before. The returned posting carries the
// stored identity, which survives re-fetches.
func (db *DB) UpsertJobPosting(ctx context.Context, posting *types.JobPosting) (*types.JobPosting, error) {
	id, err := uuid.Parse(posting.ID)
	if err != nil {
		id = uuid.New()
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (id, external_id, source, title, company, description, apply_url, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (source, external_id) DO UPDATE SET
		     title = $4,
		     company = $5,
		     description = $6,
		     apply_url = $7,
		     posted_at = $8,
		     updated_at = NOW()
		 RETURNING `+jobPostingColumns,
		id, posting.ExternalID, posting.Source, posting.Title, posting.Company,
		posting.Description, posting.ApplyURL, posting.PostedAt,
	)

	stored, err := scanJobPosting(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job posting: %w", err)
	}
	return stored, nil
}

// GetJobPostingByID retrieves a posting by its ID, or nil when absent.
func (db *DB) GetJobPostingByID(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`, id)

	posting, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return posting, nil
}

// ListJobPostings retrieves recent postings, newest first.
func (db *DB) ListJobPostings(ctx context.Context, limit int) ([]types.JobPosting, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []types.JobPosting
	for rows.Next() {
		posting, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *posting)
	}
	return postings, nil
}
