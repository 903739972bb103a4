package config

import (
	"fmt"
)

// DetectionConfig holds the caller-supplied parameters of the detection
// and feature-extraction pipeline.
type DetectionConfig struct {
	// ThresholdRatio scales the reported detection threshold relative to
	// the maximum amplitude. Must be in (0, 1].
	ThresholdRatio float64 `json:"threshold_ratio"`

	// PreMs and PostMs are the waveform window half-lengths in
	// milliseconds around each detected spike.
	PreMs  float64 `json:"pre_time_ms"`
	PostMs float64 `json:"post_time_ms"`

	// Components is the number of principal components kept by the
	// feature reducer.
	Components int `json:"n_components"`
}

// DefaultDetectionConfig returns the parameters used by the original
// acquisition workflow: 30% threshold ratio, a 1 ms / 2 ms window, and
// two principal components.
func DefaultDetectionConfig() *DetectionConfig {
	return &DetectionConfig{
		ThresholdRatio: 0.3,
		PreMs:          1.0,
		PostMs:         2.0,
		Components:     2,
	}
}

// Validate checks the parameter ranges before any stage runs.
func (c *DetectionConfig) Validate() error {
	if c.ThresholdRatio <= 0 || c.ThresholdRatio > 1 {
		return fmt.Errorf("threshold ratio must be in (0, 1], got %g", c.ThresholdRatio)
	}
	if c.PreMs < 0 {
		return fmt.Errorf("pre time must be non-negative, got %g ms", c.PreMs)
	}
	if c.PostMs < 0 {
		return fmt.Errorf("post time must be non-negative, got %g ms", c.PostMs)
	}
	if c.Components < 1 {
		return fmt.Errorf("component count must be positive, got %d", c.Components)
	}
	return nil
}

// FilterConfig holds the parameters of the optional upstream conditioning
// filters applied before detection.
type FilterConfig struct {
	EnableNotch    bool    `json:"enable_notch"`
	NotchFreq      float64 `json:"notch_freq"`      // Hz, typically 50 or 60
	NotchBandwidth float64 `json:"notch_bandwidth"` // Hz

	EnableHighpass bool    `json:"enable_highpass"`
	HighpassCutoff float64 `json:"highpass_cutoff"` // Hz
}

// DefaultFilterConfig returns conditioning defaults for recordings made
// on 60 Hz mains with no hardware filtering: both filters enabled, a
// 10 Hz-wide notch at 60 Hz, and a 1 Hz drift cutoff.
func DefaultFilterConfig() *FilterConfig {
	return &FilterConfig{
		EnableNotch:    true,
		NotchFreq:      60.0,
		NotchBandwidth: 10.0,
		EnableHighpass: true,
		HighpassCutoff: 1.0,
	}
}

// Validate checks the filter parameter ranges against the sample rate.
func (c *FilterConfig) Validate(sampleRate float64) error {
	if c.EnableNotch {
		if c.NotchFreq <= 0 || c.NotchFreq >= sampleRate/2 {
			return fmt.Errorf("notch frequency must be between 0 and Nyquist (%g Hz), got %g", sampleRate/2, c.NotchFreq)
		}
		if c.NotchBandwidth <= 0 {
			return fmt.Errorf("notch bandwidth must be positive, got %g", c.NotchBandwidth)
		}
	}
	if c.EnableHighpass {
		if c.HighpassCutoff <= 0 || c.HighpassCutoff >= sampleRate/2 {
			return fmt.Errorf("highpass cutoff must be between 0 and Nyquist (%g Hz), got %g", sampleRate/2, c.HighpassCutoff)
		}
	}
	return nil
}
