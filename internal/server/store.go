package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Store is the persistence surface the handlers depend on. *db.DB satisfies
// it; tests substitute an in-memory fake.
type Store interface {
	CreateResume(ctx context.Context, input *db.ResumeCreateInput) (*db.Resume, error)
	GetResumeByID(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, limit int) ([]db.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) (bool, error)

	UpsertJobPosting(ctx context.Context, posting *types.JobPosting) (*types.JobPosting, error)
	GetJobPostingByID(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)
	ListJobPostings(ctx context.Context, limit int) ([]types.JobPosting, error)

	SaveMatchResults(ctx context.Context, resumeID uuid.UUID, results []types.MatchResult) error
	ListMatchesForResume(ctx context.Context, resumeID uuid.UUID) ([]db.StoredMatch, error)
}

// JobFetcher acquires postings from an external source.
type JobFetcher interface {
	FetchJobs(ctx context.Context, roles, companies []string) ([]types.JobPosting, error)
}

// PageFetcher retrieves the description text of a single posting URL.
// *fetch.Client satisfies it.
type PageFetcher interface {
	JobDescription(ctx context.Context, url string) (string, error)
}
