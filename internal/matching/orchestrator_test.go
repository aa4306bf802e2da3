package matching

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/vocab"
)

func testVocabulary(t *testing.T) *vocab.Vocabulary {
	t.Helper()
	v, err := vocab.Build([]vocab.Entry{
		{Name: "Python", Category: "language", Aliases: []string{"python", "py"}},
		{Name: "SQL", Category: "language", Aliases: []string{"sql"}},
		{Name: "Go", Category: "language", Aliases: []string{"golang"}},
		{Name: "Docker", Category: "tool", Aliases: []string{"docker"}},
		{Name: "Machine Learning", Category: "field", Aliases: []string{"ml", "machine learning"}},
	})
	require.NoError(t, err)
	return v
}

func testOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	return NewOrchestrator(testVocabulary(t), NewProfileCache(), OrchestratorConfig{})
}

// pad lengthens a posting description past the low-confidence threshold
// without introducing vocabulary hits.
func pad(description string) string {
	return description + strings.Repeat(" the team works on interesting problems every day", 3)
}

func TestOrchestrator_ExtractProfile(t *testing.T) {
	o := testOrchestrator(t)

	got, err := o.ExtractProfile(context.Background(), "resume-1",
		[]byte("5 years experience in Python and SQL."))
	require.NoError(t, err)

	assert.Equal(t, []string{"Python", "SQL"}, got.Skills)
	require.NotNil(t, got.ExperienceYears)
	assert.Equal(t, 5, *got.ExperienceYears)
}

func TestOrchestrator_ExtractProfileCachesByContent(t *testing.T) {
	o := testOrchestrator(t)
	raw := []byte("Senior engineer, Python and Docker.")

	first, err := o.ExtractProfile(context.Background(), "resume-1", raw)
	require.NoError(t, err)

	// Same bytes under a different source ID hit the cache: fingerprints are
	// content-derived, not identity-derived.
	second, err := o.ExtractProfile(context.Background(), "resume-2", raw)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), o.Cache().Extractions())
}

func TestOrchestrator_MatchAllRanksByScore(t *testing.T) {
	o := testOrchestrator(t)

	resume, err := o.ExtractProfile(context.Background(), "resume-1",
		[]byte("5 years experience in Python and SQL."))
	require.NoError(t, err)

	postings := []types.JobPosting{
		{ID: "job-partial", Title: "Platform Engineer", Description: pad("We need Docker and Python experience.")},
		{ID: "job-full", Title: "Data Engineer", Description: pad("Python and SQL required.")},
		{ID: "job-none", Title: "Site Reliability Engineer", Description: pad("Docker and Go only.")},
	}

	results, skipped, err := o.MatchAll(context.Background(), resume, postings)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, results, 3)

	assert.Equal(t, "job-full", results[0].JobID)
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, []string{}, results[0].MissingSkills)

	assert.Equal(t, "job-partial", results[1].JobID)
	assert.Equal(t, 50, results[1].Score)
	assert.Equal(t, []string{"Docker"}, results[1].MissingSkills)

	assert.Equal(t, "job-none", results[2].JobID)
	assert.Equal(t, 0, results[2].Score)
	assert.Equal(t, []string{"Docker", "Go"}, results[2].MissingSkills)
}

func TestOrchestrator_MatchAllTieBreakKeepsInputOrder(t *testing.T) {
	o := testOrchestrator(t)

	resume, err := o.ExtractProfile(context.Background(), "resume-1",
		[]byte("Python developer."))
	require.NoError(t, err)

	// Three postings with identical skill demands score identically; their
	// relative order must survive the sort.
	postings := []types.JobPosting{
		{ID: "job-c", Title: "Backend Engineer", Description: pad("Python needed.")},
		{ID: "job-a", Title: "Backend Engineer", Description: pad("We want python here.")},
		{ID: "job-b", Title: "Backend Engineer", Description: pad("Experience with py expected.")},
	}

	results, _, err := o.MatchAll(context.Background(), resume, postings)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "job-c", results[0].JobID)
	assert.Equal(t, "job-a", results[1].JobID)
	assert.Equal(t, "job-b", results[2].JobID)
}

func TestOrchestrator_MatchAllSkipsUndecodablePosting(t *testing.T) {
	o := testOrchestrator(t)

	resume, err := o.ExtractProfile(context.Background(), "resume-1",
		[]byte("Python developer."))
	require.NoError(t, err)

	postings := []types.JobPosting{
		{ID: "job-good", Title: "Backend Engineer", Description: pad("Python needed.")},
		{ID: "job-bad", Title: "Broken", Description: string([]byte{0xff, 0xfe, 0xfd})},
	}

	results, skipped, err := o.MatchAll(context.Background(), resume, postings)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "job-good", results[0].JobID)

	require.Len(t, skipped, 1)
	assert.Equal(t, "job-bad", skipped[0].JobID)
	assert.NotEmpty(t, skipped[0].Reason)
}

func TestOrchestrator_MatchAllIdempotentWithoutReextraction(t *testing.T) {
	o := testOrchestrator(t)

	resume, err := o.ExtractProfile(context.Background(), "resume-1",
		[]byte("5 years experience in Python and SQL."))
	require.NoError(t, err)

	postings := []types.JobPosting{
		{ID: "job-1", Title: "Data Engineer", Description: pad("Python and SQL required.")},
		{ID: "job-2", Title: "Platform Engineer", Description: pad("Docker and Go wanted.")},
	}

	first, _, err := o.MatchAll(context.Background(), resume, postings)
	require.NoError(t, err)
	extractionsAfterFirst := o.Cache().Extractions()

	second, _, err := o.MatchAll(context.Background(), resume, postings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, extractionsAfterFirst, o.Cache().Extractions())
}

func TestOrchestrator_MatchAllEmptyPostings(t *testing.T) {
	o := testOrchestrator(t)

	resume, err := o.ExtractProfile(context.Background(), "resume-1",
		[]byte("Python developer."))
	require.NoError(t, err)

	results, skipped, err := o.MatchAll(context.Background(), resume, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, skipped)
}

func TestOrchestrator_MatchAllExpiredContext(t *testing.T) {
	o := testOrchestrator(t)

	resume, err := o.ExtractProfile(context.Background(), "resume-1",
		[]byte("Python developer."))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, _, err = o.MatchAll(ctx, resume, []types.JobPosting{
		{ID: "job-1", Title: "Backend Engineer", Description: pad("Python needed.")},
	})

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
}
