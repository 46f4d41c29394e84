package models

import (
	"errors"
	"fmt"
)

// FetchError is the only hard failure the pipeline surfaces to callers.
// Every stage after the fetch is total and absorbs bad input instead.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps an upstream failure with its source name.
func NewFetchError(source string, err error) *FetchError {
	return &FetchError{Source: source, Err: err}
}

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
