package matching

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-matcher/internal/metrics"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ProfileCache caches extracted profiles keyed by content fingerprint. It is
// an explicit service object owned by the orchestrator, never ambient global
// state, and it is safe for concurrent use.
//
// The cache guarantees at most one in-flight extraction per fingerprint
// system-wide: the first caller for an unseen fingerprint runs the compute
// function, every concurrent caller for the same fingerprint suspends until
// the winner publishes the result. A failed or timed-out extraction publishes
// nothing, so the fingerprint reverts to unseen and a later call retries.
//
// Entries are append-only; at expected scale the map is bounded by the number
// of distinct documents seen in a process lifetime, so no eviction runs.
type ProfileCache struct {
	mu       sync.RWMutex
	profiles map[string]*types.ExtractedProfile

	group       singleflight.Group
	extractions atomic.Int64
}

// NewProfileCache creates an empty profile cache.
func NewProfileCache() *ProfileCache {
	return &ProfileCache{
		profiles: make(map[string]*types.ExtractedProfile),
	}
}

// GetOrCompute returns the cached profile for fingerprint, or runs compute to
// produce and publish it. Concurrent callers for the same fingerprint share a
// single compute execution. When ctx expires before the result is published
// the caller receives a TimeoutError and the in-flight computation is
// forgotten, so the next request starts fresh.
func (c *ProfileCache) GetOrCompute(ctx context.Context, fingerprint string, compute func(ctx context.Context) (*types.ExtractedProfile, error)) (*types.ExtractedProfile, error) {
	c.mu.RLock()
	cached, ok := c.profiles[fingerprint]
	c.mu.RUnlock()
	if ok {
		metrics.ProfileCacheHits.Inc()
		return cached, nil
	}

	ch := c.group.DoChan(fingerprint, func() (interface{}, error) {
		// Re-check under the group: a previous winner may have published
		// between our read miss and this call being scheduled.
		c.mu.RLock()
		existing, found := c.profiles[fingerprint]
		c.mu.RUnlock()
		if found {
			return existing, nil
		}

		c.extractions.Add(1)
		profile, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.profiles[fingerprint] = profile
		c.mu.Unlock()
		return profile, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, context.DeadlineExceeded) || errors.Is(res.Err, context.Canceled) {
				return nil, &TimeoutError{Fingerprint: fingerprint, Cause: res.Err}
			}
			return nil, res.Err
		}
		return res.Val.(*types.ExtractedProfile), nil
	case <-ctx.Done():
		c.group.Forget(fingerprint)
		return nil, &TimeoutError{Fingerprint: fingerprint, Cause: ctx.Err()}
	}
}

// Get returns the cached profile for fingerprint without computing anything.
func (c *ProfileCache) Get(fingerprint string) (*types.ExtractedProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.profiles[fingerprint]
	return p, ok
}

// Len returns the number of cached profiles.
func (c *ProfileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.profiles)
}

// Extractions returns how many compute executions actually ran. Tests use it
// to assert the at-most-one-extraction-per-fingerprint guarantee.
func (c *ProfileCache) Extractions() int64 {
	return c.extractions.Load()
}
