package matching

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/metrics"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vocab"
)

// DefaultMaxParallel bounds how many job postings are extracted and scored
// concurrently within one match run.
const DefaultMaxParallel = 8

// OrchestratorConfig configures a match orchestrator.
type OrchestratorConfig struct {
	Policy      Policy
	MaxParallel int
	Logger      *zap.Logger
}

// Orchestrator coordinates extraction and scoring across one resume and many
// job postings. It owns the profile cache and is safe for concurrent use by
// multiple simultaneous match requests.
type Orchestrator struct {
	vocabulary  *vocab.Vocabulary
	cache       *ProfileCache
	policy      Policy
	maxParallel int
	log         *zap.Logger
}

// NewOrchestrator creates an orchestrator over the given vocabulary and
// profile cache. Zero config fields fall back to defaults.
func NewOrchestrator(v *vocab.Vocabulary, cache *ProfileCache, cfg OrchestratorConfig) *Orchestrator {
	if cfg.Policy == (Policy{}) {
		cfg.Policy = DefaultPolicy()
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = DefaultMaxParallel
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Orchestrator{
		vocabulary:  v,
		cache:       cache,
		policy:      cfg.Policy,
		maxParallel: cfg.MaxParallel,
		log:         cfg.Logger,
	}
}

// Cache exposes the orchestrator's profile cache.
func (o *Orchestrator) Cache() *ProfileCache {
	return o.cache
}

// ExtractProfile normalizes raw resume bytes and extracts a profile through
// the cache, so repeated uploads of identical content extract once. The
// caller bounds the operation through ctx; on expiry all waiters receive a
// TimeoutError and the fingerprint stays retryable.
func (o *Orchestrator) ExtractProfile(ctx context.Context, sourceID string, raw []byte) (*types.ExtractedProfile, error) {
	nt, err := parsing.Normalize(raw, sourceID)
	if err != nil {
		return nil, err
	}

	return o.cache.GetOrCompute(ctx, nt.Fingerprint(), func(context.Context) (*types.ExtractedProfile, error) {
		metrics.ExtractionsTotal.WithLabelValues("resume").Inc()
		return extraction.Extract(nt, o.vocabulary, sourceID), nil
	})
}

// MatchAll scores the resume profile against every posting and returns
// results sorted descending by score. Ties keep the postings' original input
// order. Postings whose extraction fails are omitted from the results and
// reported in skipped with a reason, never returned with a fabricated score.
//
// Job extraction is deduplicated per posting fingerprint and parallelized
// across independent postings; each score computation touches only its own
// pair, so parallel execution cannot perturb the ordering.
func (o *Orchestrator) MatchAll(ctx context.Context, resume *types.ExtractedProfile, postings []types.JobPosting) ([]types.MatchResult, []types.SkippedJob, error) {
	start := time.Now()

	results := make([]*types.MatchResult, len(postings))
	skips := make([]*types.SkippedJob, len(postings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxParallel)
	for i := range postings {
		posting := &postings[i]
		g.Go(func() error {
			profile, err := o.jobProfile(gctx, posting)
			if err != nil {
				o.log.Warn("job posting skipped",
					zap.String("job_id", posting.ID),
					zap.Error(err))
				skips[i] = &types.SkippedJob{JobID: posting.ID, Reason: err.Error()}
				return nil
			}
			results[i] = Score(resume, profile, o.policy)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("timeout").Inc()
		return nil, nil, &TimeoutError{Cause: err}
	}

	ordered := make([]types.MatchResult, 0, len(postings))
	for _, r := range results {
		if r != nil {
			ordered = append(ordered, *r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	skipped := make([]types.SkippedJob, 0)
	for _, s := range skips {
		if s != nil {
			skipped = append(skipped, *s)
		}
	}

	metrics.MatchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	return ordered, skipped, nil
}

// jobProfile extracts a posting's profile through the cache. Postings are
// keyed by fingerprint of their text plus acquisition source, since the same
// posting is reused across many resumes.
func (o *Orchestrator) jobProfile(ctx context.Context, posting *types.JobPosting) (*types.ExtractedProfile, error) {
	nt, err := parsing.Normalize([]byte(posting.Text()), posting.ID)
	if err != nil {
		return nil, err
	}

	return o.cache.GetOrCompute(ctx, nt.FingerprintWithSource(posting.Source), func(context.Context) (*types.ExtractedProfile, error) {
		metrics.ExtractionsTotal.WithLabelValues("job").Inc()
		return extraction.Extract(nt, o.vocabulary, posting.ID), nil
	})
}
