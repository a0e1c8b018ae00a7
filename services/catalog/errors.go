package catalog

import "errors"

var (
	// ErrValidation marks a create/update payload with a missing or
	// malformed required field. Not retryable.
	ErrValidation = errors.New("invalid film payload")

	// ErrNotFound is returned when an id has no matching record.
	ErrNotFound = errors.New("film not found")

	// ErrInvalidQuery is returned for an empty or whitespace-only search.
	ErrInvalidQuery = errors.New("search query is required")

	// ErrStoreUnavailable wraps store failures and timeouts. Callers may
	// retry with backoff; the catalog never retries on its own.
	ErrStoreUnavailable = errors.New("film store unavailable")
)
