package spectral

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum computes one-sided amplitude and power spectra of a real
// signal, used to verify conditioning filters (e.g. mains notch
// attenuation) before running detection.
type Spectrum struct {
	sampleRate float64
}

// NewSpectrum creates a spectrum calculator for the given sample rate.
func NewSpectrum(sampleRate float64) *Spectrum {
	return &Spectrum{sampleRate: sampleRate}
}

// Magnitude computes the one-sided magnitude spectrum of the signal using
// mjibson/go-dsp, which handles non-power-of-2 lengths. The result has
// n/2+1 bins; bin i corresponds to frequency i*sampleRate/n.
func (s *Spectrum) Magnitude(signal []float64) []float64 {
	if len(signal) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(signal)

	bins := len(signal)/2 + 1
	magnitude := make([]float64, bins)
	for i := range bins {
		magnitude[i] = math.Hypot(real(spectrum[i]), imag(spectrum[i]))
	}

	return magnitude
}

// Power computes the one-sided power spectrum (squared magnitudes).
func (s *Spectrum) Power(signal []float64) []float64 {
	magnitude := s.Magnitude(signal)

	power := make([]float64, len(magnitude))
	for i, mag := range magnitude {
		power[i] = mag * mag
	}

	return power
}

// Frequencies returns the frequency in Hz of each one-sided spectrum bin
// for a signal of length n.
func (s *Spectrum) Frequencies(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	bins := n/2 + 1
	freqs := make([]float64, bins)
	for i := range bins {
		freqs[i] = float64(i) * s.sampleRate / float64(n)
	}

	return freqs
}

// DominantFrequency returns the frequency of the highest non-DC magnitude
// bin, or 0 for signals too short to analyze.
func (s *Spectrum) DominantFrequency(signal []float64) float64 {
	magnitude := s.Magnitude(signal)
	if len(magnitude) < 2 {
		return 0.0
	}

	bestBin := 1
	for i := 2; i < len(magnitude); i++ {
		if magnitude[i] > magnitude[bestBin] {
			bestBin = i
		}
	}

	return float64(bestBin) * s.sampleRate / float64(len(signal))
}
