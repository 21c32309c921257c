package pretoken

import (
	"errors"
	"fmt"
)

// Causes of an attribute extraction failure
var (
	ErrMissingRequest          = errors.New("event has no request")
	ErrMalformedRequest        = errors.New("event request is not an object")
	ErrMissingUserAttributes   = errors.New("request has no userAttributes")
	ErrMalformedUserAttributes = errors.New("request userAttributes is not an object")
	ErrMalformedResponse       = errors.New("event response is not an object")
)

// ExtractionError is the single failure kind of the transformer. Op names the
// step that failed.
type ExtractionError struct {
	Op  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func extractionError(op string, err error) error {
	return &ExtractionError{Op: op, Err: err}
}
