package domain

import "errors"

// Sentinel errors, classified with errors.Is by the CLI.
var (
	// ErrMissingConfiguration indicates a required credential or repository
	// identifier is absent or malformed.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrFetchFailed indicates a non-success response or transport failure
	// while talking to GitHub.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrPersistenceFailed indicates the report could not be written or read.
	ErrPersistenceFailed = errors.New("persistence failed")
)
