package types

import "time"

// JobPosting represents a job posting acquired from an external source. The
// engine treats it as read-only input; ownership stays with the acquisition
// layer.
type JobPosting struct {
	ID          string     `json:"id"`
	ExternalID  string     `json:"external_id,omitempty"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	ApplyURL    string     `json:"apply_url"`
	Source      string     `json:"source,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
}

// Text returns the posting text fed to the extractor. The title participates
// because postings frequently name the core skill only there ("Senior Go
// Engineer").
func (j *JobPosting) Text() string {
	if j.Title == "" {
		return j.Description
	}
	return j.Title + "\n" + j.Description
}
