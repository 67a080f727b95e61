package core

import "errors"

var (
	// ErrInvalidDimension is returned when a grid is requested with a width or
	// height that is not strictly positive.
	ErrInvalidDimension = errors.New("invalid grid dimension")
	// ErrOutOfRange reports a coordinate outside [0,w)x[0,h).
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrUnknownRule reports an unrecognized rule selector.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrUnknownNeighborhood reports an unrecognized neighbor mode.
	ErrUnknownNeighborhood = errors.New("unknown neighborhood")
	// ErrInvalidState reports a cell state outside the active rule's range.
	ErrInvalidState = errors.New("invalid cell state")
	// ErrInvalidParameter reports a rule parameter that cannot be used, such as
	// a zero resistance divisor.
	ErrInvalidParameter = errors.New("invalid rule parameter")
	// ErrUnknownSeeding reports an unrecognized seeding policy name.
	ErrUnknownSeeding = errors.New("unknown seeding policy")
	// ErrUnknownSim reports a simulation name missing from the registry.
	ErrUnknownSim = errors.New("unknown sim")
)
