package service

import "errors"

// Solver errors.
var (
	// ErrNoValues indicates there was nothing to take a minimum over: no
	// seeds for part 1, or only empty seed ranges for part 2.
	ErrNoValues = errors.New("almanac: no values to evaluate")

	// ErrUnknownPart is returned for a part other than 1 or 2.
	ErrUnknownPart = errors.New("almanac: unknown part")
)
