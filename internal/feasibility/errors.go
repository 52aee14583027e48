package feasibility

import "errors"

var (
	// ErrValidation marks user-correctable request problems.
	ErrValidation = errors.New("invalid feasibility request")
	// ErrExtraction means the model's output could not be parsed as the
	// expected JSON shape. Never recovered from locally.
	ErrExtraction = errors.New("could not extract JSON from model response")
)
