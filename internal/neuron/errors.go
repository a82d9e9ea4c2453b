package neuron

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidSteps indicates a non-positive step count; the firing rate
	// would be undefined.
	ErrInvalidSteps = errors.New("neuron: step count must be positive")

	// ErrInvalidParams indicates a parameter that is NaN or infinite.
	ErrInvalidParams = errors.New("neuron: parameter is not finite")
)
