package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCategoryTree indicates the taxonomy breaks the level/parent invariant.
	ErrInvalidCategoryTree = errors.New("invalid category tree")

	// ErrInvalidSortKey indicates a sort was requested on a non-comparable field.
	ErrInvalidSortKey = errors.New("invalid sort key")

	// Source Errors.

	// ErrSourceUnavailable indicates the keyword source could not be reached.
	ErrSourceUnavailable = errors.New("keyword source unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthRequired indicates the keyword API needs a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrCacheUnavailable indicates the dataset cache backend could not be reached.
	// Loads continue against the source when this happens.
	ErrCacheUnavailable = errors.New("dataset cache unavailable")
)
