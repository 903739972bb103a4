package filters

import (
	"fmt"
	"math"
)

// NotchFilter implements a digital notch filter using biquad topology,
// used to remove mains interference (50/60 Hz) from recordings made with
// the hardware notch disabled.
//
// Coefficients follow the cookbook formulas from Robert Bristow-Johnson's
// "Cookbook formulae for audio EQ biquad filter coefficients"
// Reference: https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html
type NotchFilter struct {
	sampleRate float64
	notchFreq  float64 // Center frequency in Hz
	bandwidth  float64 // Bandwidth in Hz
	qFactor    float64 // Quality factor (notchFreq/bandwidth)

	// Biquad coefficients
	b0, b1, b2 float64 // Numerator coefficients
	a0, a1, a2 float64 // Denominator coefficients

	// State variables for direct form II implementation
	w1, w2 float64 // Delay line

	initialized bool
}

// NewNotchFilter creates a notch filter centered on notchFreq with the
// given bandwidth. The Q factor is calculated as notchFreq/bandwidth;
// narrower bandwidths give more selective notches.
func NewNotchFilter(sampleRate, notchFreq, bandwidth float64) *NotchFilter {
	nf := &NotchFilter{
		sampleRate: sampleRate,
		notchFreq:  notchFreq,
		bandwidth:  bandwidth,
		qFactor:    notchFreq / bandwidth,
	}

	nf.computeCoefficients()
	return nf
}

// computeCoefficients calculates the biquad coefficients using the
// cookbook notch formula.
func (nf *NotchFilter) computeCoefficients() {
	// Normalize frequency: w0 = 2*pi*f0/Fs
	w0 := 2.0 * math.Pi * nf.notchFreq / nf.sampleRate

	// Prevent numerical issues at Nyquist
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}

	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)

	// Alpha parameter: alpha = sin(w0)/(2*Q)
	alpha := sinW0 / (2.0 * nf.qFactor)

	// Notch coefficients (cookbook formula)
	nf.b0 = 1.0
	nf.b1 = -2.0 * cosW0
	nf.b2 = 1.0
	nf.a0 = 1.0 + alpha
	nf.a1 = -2.0 * cosW0
	nf.a2 = 1.0 - alpha

	// Normalize by a0 for direct form II implementation
	nf.b0 /= nf.a0
	nf.b1 /= nf.a0
	nf.b2 /= nf.a0
	nf.a1 /= nf.a0
	nf.a2 /= nf.a0
	nf.a0 = 1.0

	nf.initialized = true
}

// Process applies the notch filter to a single sample.
// Uses Direct Form II biquad implementation for numerical stability.
func (nf *NotchFilter) Process(input float64) float64 {
	if !nf.initialized {
		nf.computeCoefficients()
	}

	// w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
	w := input - nf.a1*nf.w1 - nf.a2*nf.w2

	// y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
	output := nf.b0*w + nf.b1*nf.w1 + nf.b2*nf.w2

	// Update delay line
	nf.w2 = nf.w1
	nf.w1 = w

	return output
}

// ProcessBuffer applies the notch filter to an entire buffer of samples.
func (nf *NotchFilter) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = nf.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state (delay line).
// Call this when processing discontinuous recording segments.
func (nf *NotchFilter) Reset() {
	nf.w1, nf.w2 = 0.0, 0.0
}

// SetParameters updates the filter parameters and recomputes coefficients.
func (nf *NotchFilter) SetParameters(notchFreq, bandwidth float64) error {
	if notchFreq <= 0 || notchFreq >= nf.sampleRate/2 {
		return fmt.Errorf("notch frequency must be between 0 and Nyquist frequency (%g Hz)", nf.sampleRate/2)
	}

	if bandwidth <= 0 {
		return fmt.Errorf("bandwidth must be positive")
	}

	nf.notchFreq = notchFreq
	nf.bandwidth = bandwidth
	nf.qFactor = notchFreq / bandwidth
	nf.computeCoefficients()

	return nil
}

// GetFrequencyResponse computes the magnitude and phase response at given
// frequency. Returns magnitude (linear scale) and phase (radians).
func (nf *NotchFilter) GetFrequencyResponse(frequency float64) (magnitude, phase float64) {
	w := 2.0 * math.Pi * frequency / nf.sampleRate

	cosW := math.Cos(w)
	sinW := math.Sin(w)
	cos2W := math.Cos(2 * w)
	sin2W := math.Sin(2 * w)

	// Numerator: b0 + b1*e^-jw + b2*e^-j2w
	numReal := nf.b0 + nf.b1*cosW + nf.b2*cos2W
	numImag := -nf.b1*sinW - nf.b2*sin2W

	// Denominator: a0 + a1*e^-jw + a2*e^-j2w
	denReal := nf.a0 + nf.a1*cosW + nf.a2*cos2W
	denImag := -nf.a1*sinW - nf.a2*sin2W

	denMagSq := denReal*denReal + denImag*denImag

	hReal := (numReal*denReal + numImag*denImag) / denMagSq
	hImag := (numImag*denReal - numReal*denImag) / denMagSq

	magnitude = math.Sqrt(hReal*hReal + hImag*hImag)
	phase = math.Atan2(hImag, hReal)

	return magnitude, phase
}

// GetParameters returns the current filter parameters.
func (nf *NotchFilter) GetParameters() (notchFreq, bandwidth, qFactor float64) {
	return nf.notchFreq, nf.bandwidth, nf.qFactor
}
