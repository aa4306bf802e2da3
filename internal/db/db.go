// Package db provides PostgreSQL persistence for resumes, job postings, and
// match results.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables the matcher needs when they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			filename TEXT NOT NULL,
			content_type TEXT NOT NULL,
			fingerprint TEXT NOT NULL UNIQUE,
			raw_text TEXT NOT NULL,
			skills JSONB NOT NULL DEFAULT '[]',
			experience_years INT,
			raw_token_count INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS job_postings (
			id UUID PRIMARY KEY,
			external_id TEXT NOT NULL,
			source TEXT NOT NULL,
			title TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			apply_url TEXT NOT NULL DEFAULT '',
			posted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (source, external_id)
		)`,
		`CREATE TABLE IF NOT EXISTS match_results (
			id UUID PRIMARY KEY,
			resume_id UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
			job_id UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
			score INT NOT NULL,
			matched_skills JSONB NOT NULL DEFAULT '[]',
			missing_skills JSONB NOT NULL DEFAULT '[]',
			explanation JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (resume_id, job_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
