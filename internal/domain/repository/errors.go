package repository

import "errors"

// Failure taxonomy for ingestion sources. Adapters wrap their errors with
// these sentinels; the ingestor absorbs all of them into fallbacks and only
// uses the class to label warnings and metrics.
var (
	// ErrFetch marks a network or availability failure.
	ErrFetch = errors.New("fetch failure")
	// ErrParse marks a malformed payload.
	ErrParse = errors.New("parse failure")
	// ErrEmptySeries marks a series with no usable records after filtering.
	ErrEmptySeries = errors.New("empty series")
)
