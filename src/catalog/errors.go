package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a named lookup has no match.
	ErrNotFound = errors.New("not found")
	// ErrAuthRequired is returned when a pro-gated lookup cannot obtain a credential.
	ErrAuthRequired = errors.New("pro features requested but authentication failed, check your FA_TOKEN")
)

// UpstreamError wraps a transport or decode failure talking to the catalog API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Font Awesome API error: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}
