package spectral_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosig/spikesort/algorithms/spectral"
)

func sine(freq, sampleRate float64, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return signal
}

func TestMagnitudePeakBin(t *testing.T) {
	const sampleRate = 1000.0
	signal := sine(50, sampleRate, 1000)

	sp := spectral.NewSpectrum(sampleRate)
	magnitude := sp.Magnitude(signal)

	require.Len(t, magnitude, 501)

	bestBin := 0
	for i, mag := range magnitude {
		if mag > magnitude[bestBin] {
			bestBin = i
		}
	}
	assert.Equal(t, 50, bestBin)
}

func TestDominantFrequency(t *testing.T) {
	const sampleRate = 1000.0

	sp := spectral.NewSpectrum(sampleRate)
	assert.InDelta(t, 60.0, sp.DominantFrequency(sine(60, sampleRate, 2000)), 0.5)
	assert.InDelta(t, 250.0, sp.DominantFrequency(sine(250, sampleRate, 2000)), 0.5)
}

func TestFrequencies(t *testing.T) {
	sp := spectral.NewSpectrum(1000)
	freqs := sp.Frequencies(1000)

	require.Len(t, freqs, 501)
	assert.InDelta(t, 0.0, freqs[0], 1e-12)
	assert.InDelta(t, 1.0, freqs[1], 1e-12)
	assert.InDelta(t, 500.0, freqs[500], 1e-12)
}

func TestPowerIsSquaredMagnitude(t *testing.T) {
	const sampleRate = 1000.0
	signal := sine(50, sampleRate, 512)

	sp := spectral.NewSpectrum(sampleRate)
	magnitude := sp.Magnitude(signal)
	power := sp.Power(signal)

	require.Len(t, power, len(magnitude))
	for i := range power {
		assert.InDelta(t, magnitude[i]*magnitude[i], power[i], 1e-6)
	}
}

func TestEmptySignal(t *testing.T) {
	sp := spectral.NewSpectrum(1000)
	assert.Empty(t, sp.Magnitude(nil))
	assert.Empty(t, sp.Power(nil))
	assert.Empty(t, sp.Frequencies(0))
	assert.Zero(t, sp.DominantFrequency(nil))
}
