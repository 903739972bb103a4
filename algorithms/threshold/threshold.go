package threshold

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Estimate holds the amplitude-relative detection levels derived from a
// single channel. Threshold is the conventional ratio-scaled level and is
// reported for observability only; detection admits peaks through the
// fixed fractional band [MinHeight, MaxHeight]. Both are exposed so
// callers can see which level was actually applied.
type Estimate struct {
	MaxAmplitude float64 `json:"max_amplitude"`
	Threshold    float64 `json:"threshold"`
	MinHeight    float64 `json:"min_height"`
	MaxHeight    float64 `json:"max_height"`
}

// Band returns the admission interval used by peak detection.
func (e *Estimate) Band() (minHeight, maxHeight float64) {
	return e.MinHeight, e.MaxHeight
}

// Estimator derives detection levels relative to the observed amplitude of
// a recording, so the same parameters generalize across channels and
// recordings with different absolute scales.
type Estimator struct {
	ratio float64 // threshold ratio relative to the maximum amplitude
}

// NewEstimator creates an estimator with the given threshold ratio.
// The ratio scales the reported threshold; it does not move the
// admission band.
func NewEstimator(ratio float64) *Estimator {
	return &Estimator{ratio: ratio}
}

// Estimate computes the maximum amplitude of the signal, the ratio-scaled
// threshold, and the fixed fractional admission band at 1/3 and 1/2 of the
// maximum amplitude.
func (e *Estimator) Estimate(signal []float64) (*Estimate, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("cannot estimate threshold of an empty signal")
	}

	maxAmplitude := floats.Max(signal)

	return &Estimate{
		MaxAmplitude: maxAmplitude,
		Threshold:    e.ratio * maxAmplitude,
		MinHeight:    maxAmplitude / 3.0,
		MaxHeight:    maxAmplitude / 2.0,
	}, nil
}

// Ratio returns the configured threshold ratio.
func (e *Estimator) Ratio() float64 {
	return e.ratio
}
