package dirichlet

import (
	"errors"
)

var (
	// ErrNotFound is returned when an asymmetric prior is queried for an
	// event it was not built with.
	ErrNotFound = errors.New("dirichlet: event not in prior")

	// ErrNoSample is returned when the sampling walk exhausts the
	// observed events without the cumulative probability reaching the
	// drawn threshold.
	ErrNoSample = errors.New("dirichlet: no event crossed the sampling threshold")

	// ErrTruncated is returned when a stream ends partway through a
	// record during decoding. An entirely empty stream is not an error;
	// it decodes as "no record".
	ErrTruncated = errors.New("dirichlet: truncated stream")
)
