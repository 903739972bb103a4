package filters

import (
	"math"
)

// HighpassFilter implements a one-pole DC blocking high-pass filter,
// used to remove electrode drift and DC offset below ~1 Hz before spike
// detection.
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
type HighpassFilter struct {
	poleLocation float64 // R parameter (0 < R < 1)
	cutoffFreq   float64 // -3dB cutoff frequency in Hz
	sampleRate   float64

	// State variables
	x1 float64 // Previous input sample x[n-1]
	y1 float64 // Previous output sample y[n-1]

	initialized bool
}

// NewHighpassFilter creates a high-pass filter with the specified cutoff
// frequency. The pole location R is calculated as R = 1 - 2*pi*fc/fs,
// valid for cutoffs well below Nyquist.
func NewHighpassFilter(sampleRate, cutoffFreq float64) *HighpassFilter {
	hp := &HighpassFilter{
		sampleRate: sampleRate,
		cutoffFreq: cutoffFreq,
	}

	hp.computePoleLocation()
	return hp
}

// computePoleLocation calculates the pole location from the cutoff
// frequency with a small-angle approximation, clamped to (0, 1).
func (hp *HighpassFilter) computePoleLocation() {
	if hp.sampleRate > 0 && hp.cutoffFreq > 0 {
		hp.poleLocation = 1.0 - (2.0 * math.Pi * hp.cutoffFreq / hp.sampleRate)

		if hp.poleLocation >= 1.0 {
			hp.poleLocation = 0.999
		} else if hp.poleLocation <= 0.0 {
			hp.poleLocation = 0.001
		}

		hp.initialized = true
	}
}

// Process applies the high-pass filter to a single sample.
// Implements the difference equation:
// y[n] = x[n] - x[n-1] + R * y[n-1]
func (hp *HighpassFilter) Process(input float64) float64 {
	if !hp.initialized {
		hp.poleLocation = 0.999
		hp.initialized = true
	}

	output := input - hp.x1 + hp.poleLocation*hp.y1

	hp.x1 = input
	hp.y1 = output

	return output
}

// ProcessBuffer applies the high-pass filter to an entire buffer of samples.
func (hp *HighpassFilter) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = hp.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state.
// Call this when processing discontinuous recording segments.
func (hp *HighpassFilter) Reset() {
	hp.x1 = 0.0
	hp.y1 = 0.0
}

// GetCutoffFrequency calculates the approximate -3dB cutoff frequency
// from the pole location: fc ≈ (1-R)*fs/(2*pi).
func (hp *HighpassFilter) GetCutoffFrequency() float64 {
	if hp.sampleRate <= 0 {
		return 0.0
	}

	return (1.0 - hp.poleLocation) * hp.sampleRate / (2.0 * math.Pi)
}

// GetPoleLocation returns the current pole location parameter.
func (hp *HighpassFilter) GetPoleLocation() float64 {
	return hp.poleLocation
}
