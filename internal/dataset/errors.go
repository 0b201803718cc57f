package dataset

import "errors"

// Sentinel errors for the annotation pipeline. Callers classify failures
// with errors.Is; wrapping sites add context with %w. None of these are
// retried: the pipeline runs once and either produces a correct artifact
// or fails loudly.
var (
	// ErrMalformedFilename indicates an image filename that does not match
	// the expected metadata grammar. A single malformed filename aborts the
	// whole collection run, since a silently dropped or misparsed record
	// would corrupt the class index.
	ErrMalformedFilename = errors.New("malformed filename")

	// ErrSourceNotFound indicates a missing source image directory.
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrIOFailure indicates an annotation file that could not be written
	// or read back.
	ErrIOFailure = errors.New("annotation io failure")

	// ErrSchemaMismatch indicates an annotation file whose header does not
	// match any known column layout, typically a stale or foreign file.
	ErrSchemaMismatch = errors.New("annotation schema mismatch")

	// ErrPrecondition indicates a referenced image file that no longer
	// exists when a view materializes it. Skipping would desynchronize
	// label alignment, so this is fatal.
	ErrPrecondition = errors.New("precondition failure")
)
