package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRejected     = errors.New("entry rejected by server")
)

// RemoteWriteError reports a failed insert into the remote price store.
type RemoteWriteError struct {
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("remote write failed: %v", e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }
