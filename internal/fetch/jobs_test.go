package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adzunaFixture(now time.Time) map[string]any {
	return map[string]any{
		"results": []map[string]any{
			{
				"id":           12345,
				"title":        "Senior Backend Developer",
				"company":      map[string]any{"display_name": "Acme Corp"},
				"description":  "<p>Python and <strong>Docker</strong> experience.</p>",
				"created":      now.Add(-48 * time.Hour).Format(time.RFC3339),
				"redirect_url": "https://example.com/apply/12345",
			},
			{
				"id":           12346,
				"title":        "Backend Developer",
				"company":      map[string]any{"display_name": "Old Jobs Inc"},
				"description":  "Stale posting.",
				"created":      now.Add(-10 * 24 * time.Hour).Format(time.RFC3339),
				"redirect_url": "https://example.com/apply/12346",
			},
			{
				"id":           12347,
				"title":        "Accountant",
				"company":      map[string]any{"display_name": "Acme Corp"},
				"description":  "Not an engineering role.",
				"created":      now.Add(-24 * time.Hour).Format(time.RFC3339),
				"redirect_url": "https://example.com/apply/12347",
			},
		},
	}
}

func TestAdzunaClient_FetchJobs(t *testing.T) {
	now := time.Now().UTC()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("app_key"))
		assert.Equal(t, "backend developer", r.URL.Query().Get("what"))
		_ = json.NewEncoder(w).Encode(adzunaFixture(now))
	}))
	defer srv.Close()

	client := NewAdzunaClient(AdzunaOptions{AppID: "test-id", AppKey: "test-key", BaseURL: srv.URL})

	postings, err := client.FetchJobs(context.Background(), []string{"backend developer"}, nil)
	require.NoError(t, err)

	// The stale posting and the title mismatch are filtered out.
	require.Len(t, postings, 1)
	got := postings[0]
	assert.Equal(t, "12345", got.ExternalID)
	assert.Equal(t, "Senior Backend Developer", got.Title)
	assert.Equal(t, "Acme Corp", got.Company)
	assert.Equal(t, "Python and Docker experience.", got.Description)
	assert.Equal(t, "https://example.com/apply/12345", got.ApplyURL)
	assert.Equal(t, SourceAdzuna, got.Source)
	assert.NotEmpty(t, got.ID)
	require.NotNil(t, got.PostedAt)
}

func TestAdzunaClient_CompanyFilter(t *testing.T) {
	now := time.Now().UTC()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(adzunaFixture(now))
	}))
	defer srv.Close()

	client := NewAdzunaClient(AdzunaOptions{AppID: "test-id", AppKey: "test-key", BaseURL: srv.URL})

	postings, err := client.FetchJobs(context.Background(), []string{"developer"}, []string{"nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, postings)

	postings, err = client.FetchJobs(context.Background(), []string{"developer"}, []string{"acme"})
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Acme Corp", postings[0].Company)
}

func TestAdzunaClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewAdzunaClient(AdzunaOptions{AppID: "test-id", AppKey: "test-key", BaseURL: srv.URL})

	_, err := client.FetchJobs(context.Background(), []string{"developer"}, nil)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "403")
}

func TestAdzunaClient_MockFallbackWithoutCredentials(t *testing.T) {
	client := NewAdzunaClient(AdzunaOptions{})

	postings, err := client.FetchJobs(context.Background(), []string{"developer", "engineer"}, nil)
	require.NoError(t, err)

	require.Len(t, postings, 2)
	assert.Equal(t, "Backend Developer", postings[0].Title)
	assert.Equal(t, "Frontend Engineer", postings[1].Title)
	for _, p := range postings {
		assert.Equal(t, SourceMock, p.Source)
	}
}

func TestAdzunaClient_MockFallbackAppliesTitleFilter(t *testing.T) {
	client := NewAdzunaClient(AdzunaOptions{})

	postings, err := client.FetchJobs(context.Background(), []string{"frontend"}, nil)
	require.NoError(t, err)

	require.Len(t, postings, 1)
	assert.Equal(t, "Frontend Engineer", postings[0].Title)
}

func TestParsePostedDate(t *testing.T) {
	got := parsePostedDate("2026-08-30T12:00:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())

	got = parsePostedDate("2026-08-30T12:00:00")
	require.NotNil(t, got)

	assert.Nil(t, parsePostedDate(""))
	assert.Nil(t, parsePostedDate("last Tuesday"))
}
