package spikes

import (
	"fmt"
)

// Keys the upstream format parser uses for the fields this pipeline
// consumes.
const (
	KeyAmplifierData = "amplifier_data"
	KeyTimeVector    = "t_amplifier"
	KeySampleRate    = "sample_rate"
)

// Recording is the parsed output of the acquisition device that the
// pipeline consumes: per-channel amplifier samples, the shared time
// vector, and the sample rate. The binary format parser itself is an
// external collaborator; Recording only adapts its output. All fields
// are read-only once constructed.
type Recording struct {
	// AmplifierData holds one row of samples per channel.
	AmplifierData [][]float64 `json:"amplifier_data"`

	// Time is index-aligned with the columns of AmplifierData.
	Time []float64 `json:"t_amplifier"`

	// SampleRate is in samples per second.
	SampleRate float64 `json:"sample_rate"`
}

// RecordingFromResult adapts the key-value result map produced by the
// external format parser. It enforces the presence and types of the
// fields the pipeline needs; a missing or null sample rate is fatal
// before any detection logic runs.
func RecordingFromResult(result map[string]any) (*Recording, error) {
	rawData, ok := result[KeyAmplifierData]
	if !ok {
		return nil, fmt.Errorf("%w: %q not found in parse result", ErrMissingPrecondition, KeyAmplifierData)
	}
	data, ok := rawData.([][]float64)
	if !ok {
		return nil, fmt.Errorf("%w: %q has type %T, want [][]float64", ErrMissingPrecondition, KeyAmplifierData, rawData)
	}

	rawTime, ok := result[KeyTimeVector]
	if !ok {
		return nil, fmt.Errorf("%w: %q not found in parse result", ErrMissingPrecondition, KeyTimeVector)
	}
	timeVec, ok := rawTime.([]float64)
	if !ok {
		return nil, fmt.Errorf("%w: %q has type %T, want []float64", ErrMissingPrecondition, KeyTimeVector, rawTime)
	}

	rawRate, ok := result[KeySampleRate]
	if !ok || rawRate == nil {
		return nil, fmt.Errorf("%w: sample rate not found in parse result; ensure the header information is correctly saved", ErrMissingPrecondition)
	}

	var rate float64
	switch v := rawRate.(type) {
	case float64:
		rate = v
	case int:
		rate = float64(v)
	default:
		return nil, fmt.Errorf("%w: %q has type %T, want a number", ErrMissingPrecondition, KeySampleRate, rawRate)
	}

	rec := &Recording{
		AmplifierData: data,
		Time:          timeVec,
		SampleRate:    rate,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate checks the invariants the pipeline relies on.
func (r *Recording) Validate() error {
	if r.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %g", ErrMissingPrecondition, r.SampleRate)
	}
	for i, channel := range r.AmplifierData {
		if len(channel) != len(r.Time) {
			return fmt.Errorf("%w: channel %d has %d samples but time vector has %d", ErrMissingPrecondition, i, len(channel), len(r.Time))
		}
	}
	return nil
}

// Channels returns the number of channels in the recording.
func (r *Recording) Channels() int {
	return len(r.AmplifierData)
}

// Channel returns the signal of one channel. The channel index is an
// explicit parameter everywhere; there is no implicit default channel.
func (r *Recording) Channel(index int) ([]float64, error) {
	if index < 0 || index >= len(r.AmplifierData) {
		return nil, fmt.Errorf("%w: channel index %d out of range [0, %d)", ErrInvalidInput, index, len(r.AmplifierData))
	}
	return r.AmplifierData[index], nil
}
