package services

import (
	"errors"
	"fmt"
)

var ErrInvalidPayload = errors.New("invalid price entry")

// SubmissionError is returned by Submitter.Submit. Err wraps
// ErrInvalidPayload, a *client.RemoteWriteError or a *pending.StorageError.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
