package spikes

import (
	"errors"
)

// Sentinel errors for the detection pipeline. Stages validate their own
// preconditions and fail fast; callers can discriminate with errors.Is
// and surface actionable messages (e.g. "no spikes detected - check
// threshold parameters" vs "sample rate missing - check upstream parse").
var (
	// ErrMissingPrecondition indicates required upstream data (sample
	// rate, amplifier data, time vector) is absent. The pipeline aborts
	// before any stage runs.
	ErrMissingPrecondition = errors.New("missing precondition")

	// ErrInvalidInput indicates a stage received input it cannot operate
	// on, such as an empty signal.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData indicates detection produced too few usable
	// waveforms for the requested feature count. The caller may retry
	// with adjusted parameters.
	ErrInsufficientData = errors.New("insufficient data")
)
