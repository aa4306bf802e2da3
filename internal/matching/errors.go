// Package matching implements the scorer and the match orchestrator: the pure
// scoring policy for one (resume, job) pair, and the machinery that runs it
// across many postings with deduplicated extraction.
package matching

import "fmt"

// TimeoutError indicates that an extraction exceeded the caller-supplied
// bound. The pending fingerprint reverts to unseen, so the operation is
// retryable by the caller.
type TimeoutError struct {
	Fingerprint string
	Cause       error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("extraction timed out for fingerprint %s", e.Fingerprint)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
