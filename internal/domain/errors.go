package domain

import "errors"

var (
	// ErrLeadNotFound signals a missing lead record.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrJobNotFound signals a missing indexing job.
	ErrJobNotFound = errors.New("indexing job not found")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid search query")
	// ErrCorpusUnavailable signals that the lead corpus cannot be
	// enumerated at all (structural failure of a bulk operation).
	ErrCorpusUnavailable = errors.New("lead corpus unavailable")
)
