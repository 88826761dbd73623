package transcription

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrTranscriptionNotFound    = errors.New("transcription not found")
	ErrUnauthorizedAccess       = errors.New("unauthorized access to transcription")
	ErrInvalidTranscriptionData = errors.New("invalid transcription data")
	ErrAlreadyProcessing        = errors.New("transcription is already being processed")
	ErrArtifactNotFound         = errors.New("requested artifact is not available")
)

// ValidationError reports a missing or malformed required input for the
// record's type. It fails before any external call and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transcription input %q: %s", e.Field, e.Reason)
}

// StorageError wraps a blob store failure while reading the source audio or
// writing the synthesized output.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %q: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
