package nb2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidSummaryLength = errors.New("summary max length must be positive")
	ErrMissingOutputPath    = errors.New("notebook save pattern requires an output path")
	ErrEmptyStopTag         = errors.New("stop tag name cannot be empty")
	ErrUnknownPatternField  = errors.New("unknown field in notebook save pattern")
)
