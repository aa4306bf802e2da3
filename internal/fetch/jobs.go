package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/metrics"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultAdzunaURL is the Adzuna job search endpoint, first page, US market.
const DefaultAdzunaURL = "https://api.adzuna.com/v1/api/jobs/us/search/1"

// maxPostingAge is the recency cutoff: postings older than this are dropped.
const maxPostingAge = 5 * 24 * time.Hour

// resultsPerPage is how many results one Adzuna search requests.
const resultsPerPage = 50

// Posting source labels recorded on acquired postings.
const (
	SourceAdzuna = "adzuna"
	SourceMock   = "mock"
)

// AdzunaClient searches Adzuna for recent postings matching role keywords.
// Without credentials it serves a small fixed posting set so the rest of the
// system stays exercisable locally.
type AdzunaClient struct {
	appID   string
	appKey  string
	baseURL string
	http    *http.Client
	log     *zap.Logger
	now     func() time.Time
}

// AdzunaOptions configures an AdzunaClient.
type AdzunaOptions struct {
	AppID   string
	AppKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewAdzunaClient builds an Adzuna search client.
func NewAdzunaClient(opts AdzunaOptions) *AdzunaClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultAdzunaURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &AdzunaClient{
		appID:   opts.AppID,
		appKey:  opts.AppKey,
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: opts.Timeout},
		log:     opts.Logger,
		now:     time.Now,
	}
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID          json.Number   `json:"id"`
	Title       string        `json:"title"`
	Company     adzunaCompany `json:"company"`
	Description string        `json:"description"`
	Created     string        `json:"created"`
	RedirectURL string        `json:"redirect_url"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

// FetchJobs returns recent postings whose title contains one of the role
// keywords, optionally narrowed to the given companies. Descriptions are
// stripped of inline HTML before they reach extraction.
func (c *AdzunaClient) FetchJobs(ctx context.Context, roles, companies []string) ([]types.JobPosting, error) {
	if c.appID == "" || c.appKey == "" {
		c.log.Warn("adzuna credentials not set, serving mock postings")
		return c.filter(mockJobs(c.now()), SourceMock, roles, companies), nil
	}

	query := url.Values{}
	query.Set("app_id", c.appID)
	query.Set("app_key", c.appKey)
	query.Set("results_per_page", fmt.Sprintf("%d", resultsPerPage))
	query.Set("what", strings.Join(roles, " OR "))
	if len(companies) > 0 {
		query.Set("company", strings.Join(companies, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to create request", Cause: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: c.baseURL, Message: "adzuna request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: c.baseURL, Message: "failed to read adzuna response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: c.baseURL, Message: fmt.Sprintf("adzuna HTTP status %d", resp.StatusCode)}
	}

	var parsed adzunaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{URL: c.baseURL, Message: "cannot parse adzuna response", Cause: err}
	}

	return c.filter(parsed.Results, SourceAdzuna, roles, companies), nil
}

// filter applies the recency, role, and company rules and normalizes raw
// Adzuna jobs into postings.
func (c *AdzunaClient) filter(raw []adzunaJob, source string, roles, companies []string) []types.JobPosting {
	postings := make([]types.JobPosting, 0, len(raw))
	for _, job := range raw {
		posted := parsePostedDate(job.Created)
		if posted != nil && c.now().Sub(*posted) > maxPostingAge {
			continue
		}
		if !titleMatchesRole(job.Title, roles) {
			continue
		}
		if len(companies) > 0 && !companyMatches(job.Company.DisplayName, companies) {
			continue
		}

		externalID := job.ID.String()
		if externalID == "" {
			externalID = job.RedirectURL
		}

		postings = append(postings, types.JobPosting{
			ID:          uuid.NewString(),
			ExternalID:  externalID,
			Title:       job.Title,
			Company:     job.Company.DisplayName,
			Description: StripHTML(job.Description),
			ApplyURL:    job.RedirectURL,
			Source:      source,
			PostedAt:    posted,
		})
	}

	metrics.JobsFetchedTotal.Add(float64(len(postings)))
	return postings
}

func titleMatchesRole(title string, roles []string) bool {
	lower := strings.ToLower(title)
	for _, role := range roles {
		if strings.Contains(lower, strings.ToLower(role)) {
			return true
		}
	}
	return false
}

func companyMatches(company string, companies []string) bool {
	lower := strings.ToLower(company)
	for _, c := range companies {
		if strings.Contains(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// parsePostedDate handles the timestamp formats Adzuna emits.
func parsePostedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// mockJobs is the fixed posting set served when no Adzuna credentials are
// configured.
func mockJobs(now time.Time) []adzunaJob {
	return []adzunaJob{
		{
			ID:          "mock-1",
			Title:       "Backend Developer",
			Company:     adzunaCompany{DisplayName: "Amazon"},
			Description: "Work on backend systems with Python and Docker.",
			Created:     now.Add(-24 * time.Hour).Format(time.RFC3339),
			RedirectURL: "https://example.com/apply/1",
		},
		{
			ID:          "mock-2",
			Title:       "Frontend Engineer",
			Company:     adzunaCompany{DisplayName: "Google"},
			Description: "Frontend work with React and TypeScript.",
			Created:     now.Add(-72 * time.Hour).Format(time.RFC3339),
			RedirectURL: "https://example.com/apply/2",
		},
	}
}
