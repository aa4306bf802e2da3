package parsing

import "fmt"

// DecodeError indicates that document bytes could not be turned into text.
// It is not retryable: the user must re-upload the document in a supported
// format. The error stays scoped to its document and never fails unrelated
// matches.
type DecodeError struct {
	SourceHint string
	Message    string
	Cause      error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error for %s: %s: %v", e.SourceHint, e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error for %s: %s", e.SourceHint, e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
