package matching

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestProfileCache_GetOrComputeCachesResult(t *testing.T) {
	cache := NewProfileCache()
	want := profile("resume-1", []string{"Go"}, 30)

	got, err := cache.GetOrCompute(context.Background(), "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
		return want, nil
	})
	require.NoError(t, err)
	assert.Same(t, want, got)

	// Second call must not run compute again.
	got, err = cache.GetOrCompute(context.Background(), "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
		t.Fatal("compute ran for a cached fingerprint")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, int64(1), cache.Extractions())
}

func TestProfileCache_ConcurrentCallersShareOneExtraction(t *testing.T) {
	cache := NewProfileCache()
	want := profile("resume-1", []string{"Python"}, 30)

	release := make(chan struct{})
	const callers = 20

	var wg sync.WaitGroup
	results := make([]*types.ExtractedProfile, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.GetOrCompute(context.Background(), "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
				<-release
				return want, nil
			})
		}(i)
	}

	// Let every goroutine reach the cache before the winner finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, want, results[i])
	}
	assert.Equal(t, int64(1), cache.Extractions())
	assert.Equal(t, 1, cache.Len())
}

func TestProfileCache_TimeoutReturnsTimeoutError(t *testing.T) {
	cache := NewProfileCache()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := cache.GetOrCompute(ctx, "fp-slow", func(context.Context) (*types.ExtractedProfile, error) {
		time.Sleep(time.Second)
		return profile("resume-1", []string{"Go"}, 30), nil
	})

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "fp-slow", timeoutErr.Fingerprint)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProfileCache_FailedComputeIsRetryable(t *testing.T) {
	cache := NewProfileCache()
	boom := errors.New("boom")

	_, err := cache.GetOrCompute(context.Background(), "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Len())

	// The fingerprint reverted to unseen, so the next call computes fresh.
	want := profile("resume-1", []string{"Go"}, 30)
	got, err := cache.GetOrCompute(context.Background(), "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
		return want, nil
	})
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestProfileCache_TimedOutFingerprintIsRetryable(t *testing.T) {
	cache := NewProfileCache()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := cache.GetOrCompute(ctx, "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
		time.Sleep(200 * time.Millisecond)
		return profile("resume-1", []string{"Go"}, 30), nil
	})
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)

	// A fresh context retries the same fingerprint successfully.
	want := profile("resume-1", []string{"Go"}, 30)
	got, err := cache.GetOrCompute(context.Background(), "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
		return want, nil
	})
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestProfileCache_DistinctFingerprintsComputeIndependently(t *testing.T) {
	cache := NewProfileCache()

	for _, fp := range []string{"fp-a", "fp-b", "fp-c"} {
		fp := fp
		_, err := cache.GetOrCompute(context.Background(), fp, func(context.Context) (*types.ExtractedProfile, error) {
			return profile(fp, []string{"Go"}, 30), nil
		})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), cache.Extractions())
	assert.Equal(t, 3, cache.Len())
}

func TestProfileCache_Get(t *testing.T) {
	cache := NewProfileCache()

	_, ok := cache.Get("fp-1")
	assert.False(t, ok)

	want := profile("resume-1", []string{"Go"}, 30)
	_, err := cache.GetOrCompute(context.Background(), "fp-1", func(context.Context) (*types.ExtractedProfile, error) {
		return want, nil
	})
	require.NoError(t, err)

	got, ok := cache.Get("fp-1")
	assert.True(t, ok)
	assert.Same(t, want, got)
}
