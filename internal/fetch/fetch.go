// Package fetch acquires job postings from the outside world: the Adzuna
// search API, and direct job posting URLs with HTML text extraction plus a
// headless-browser fallback for JavaScript-rendered boards.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeMatcher/1.0)"

// Error represents a failure to acquire content from a URL.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client fetches pages over HTTP with an optional headless-browser fallback
// for pages that render their content client-side.
type Client struct {
	http            *http.Client
	userAgent       string
	browserFallback bool
	log             *zap.Logger
}

// ClientOptions configures a Client. Zero fields fall back to defaults.
type ClientOptions struct {
	Timeout         time.Duration
	UserAgent       string
	BrowserFallback bool
	Logger          *zap.Logger
}

// NewClient builds a page-fetching client.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		http:            &http.Client{Timeout: opts.Timeout},
		userAgent:       opts.UserAgent,
		browserFallback: opts.BrowserFallback,
		log:             opts.Logger,
	}
}

// Page retrieves the raw HTML of a URL.
func (c *Client) Page(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return string(body), nil
}

// JobDescription fetches a job posting URL and extracts its description text.
// When the plain HTTP fetch yields too little text and the browser fallback
// is enabled, the page is re-rendered headlessly before extraction.
func (c *Client) JobDescription(ctx context.Context, urlStr string) (string, error) {
	html, err := c.Page(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text, err := ExtractJobText(html)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to parse HTML", Cause: err}
	}

	if needsBrowserRender(text) && c.browserFallback {
		c.log.Debug("thin extraction, falling back to browser render",
			zap.String("url", urlStr),
			zap.Int("text_len", len(text)))

		rendered, err := renderPage(ctx, urlStr, DefaultTimeout)
		if err != nil {
			// The plain fetch already produced something; keep it.
			c.log.Warn("browser render failed", zap.String("url", urlStr), zap.Error(err))
			return text, nil
		}
		if renderedText, err := ExtractJobText(rendered); err == nil && len(renderedText) > len(text) {
			return renderedText, nil
		}
	}

	return text, nil
}
