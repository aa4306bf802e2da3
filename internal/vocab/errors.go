package vocab

import "fmt"

// VocabularyError indicates a defect in the vocabulary configuration: an alias
// mapped to two different canonical skills, a canonical skill with no aliases,
// or an unreadable file. It is fatal at process start and never occurs
// per-request.
type VocabularyError struct {
	Path    string
	Message string
	Cause   error
}

func (e *VocabularyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vocabulary error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("vocabulary error (%s): %s", e.Path, e.Message)
}

func (e *VocabularyError) Unwrap() error {
	return e.Cause
}
