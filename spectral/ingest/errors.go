package ingest

import "errors"

// ErrMalformed is returned when a file does not follow its format or yields
// an inconsistent spectrum.
var ErrMalformed = errors.New("ingest: malformed spectrum")
