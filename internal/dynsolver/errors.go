package dynsolver

import "errors"

// Two failure classes: construction failures make a solver permanently
// inert (every query answers ErrNotInitialized), while per-call input
// failures are local and recoverable by the caller.
var (
	// ErrNotInitialized is the uniform answer of a solver whose
	// construction failed. The construction cause is on Err().
	ErrNotInitialized = errors.New("dynsolver: solver not initialized")

	// ErrDimension indicates a caller-supplied vector whose length does
	// not match the chain's joint or segment count.
	ErrDimension = errors.New("dynsolver: input dimension mismatch")

	// ErrUnknownGroup indicates the requested group is not in the model.
	ErrUnknownGroup = errors.New("dynsolver: unknown group")
)
