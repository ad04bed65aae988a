package search

import "errors"

var (
	// ErrEmptySequence is returned when searching a sequence with no elements.
	ErrEmptySequence = errors.New("search: empty sequence")
	// ErrInvalidColumn is returned when a column index does not address a
	// value in every row the search visits.
	ErrInvalidColumn = errors.New("search: column out of range")
	// ErrInvalidQuery is returned for a NaN query value. Infinite queries
	// are valid and resolve to the first or last element.
	ErrInvalidQuery = errors.New("search: query is NaN")
)
