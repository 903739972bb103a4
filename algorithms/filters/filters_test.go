package filters_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosig/spikesort/algorithms/filters"
)

func sine(freq, sampleRate float64, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return signal
}

// rms of the second half, past the filter transient.
func steadyRMS(signal []float64) float64 {
	tail := signal[len(signal)/2:]
	sum := 0.0
	for _, v := range tail {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(tail)))
}

func TestNotchRemovesCenterFrequency(t *testing.T) {
	const sampleRate = 1000.0
	input := sine(60, sampleRate, 4000)

	output := filters.NewNotchFilter(sampleRate, 60, 10).ProcessBuffer(input)

	require.Len(t, output, len(input))
	assert.Less(t, steadyRMS(output), 0.05)
	assert.InDelta(t, 1.0/math.Sqrt2, steadyRMS(input), 0.01)
}

func TestNotchPassesDistantFrequencies(t *testing.T) {
	const sampleRate = 1000.0
	input := sine(200, sampleRate, 4000)

	output := filters.NewNotchFilter(sampleRate, 60, 10).ProcessBuffer(input)

	assert.Greater(t, steadyRMS(output), 0.6)
}

func TestNotchFrequencyResponse(t *testing.T) {
	nf := filters.NewNotchFilter(1000, 60, 10)

	atNotch, _ := nf.GetFrequencyResponse(60)
	assert.Less(t, atNotch, 0.01)

	atDC, _ := nf.GetFrequencyResponse(0)
	assert.InDelta(t, 1.0, atDC, 0.01)
}

func TestNotchSetParameters(t *testing.T) {
	nf := filters.NewNotchFilter(1000, 60, 10)

	require.NoError(t, nf.SetParameters(50, 8))
	freq, bw, q := nf.GetParameters()
	assert.InDelta(t, 50.0, freq, 1e-12)
	assert.InDelta(t, 8.0, bw, 1e-12)
	assert.InDelta(t, 6.25, q, 1e-12)

	assert.Error(t, nf.SetParameters(600, 10)) // beyond Nyquist
	assert.Error(t, nf.SetParameters(50, 0))
}

func TestHighpassBlocksDC(t *testing.T) {
	const sampleRate = 1000.0
	input := make([]float64, 2000)
	for i := range input {
		input[i] = 5.0
	}

	output := filters.NewHighpassFilter(sampleRate, 1.0).ProcessBuffer(input)

	// A constant offset decays away; only the leading edge passes.
	assert.InDelta(t, 5.0, output[0], 1e-12)
	assert.Less(t, math.Abs(output[len(output)-1]), 0.1)
}

func TestHighpassPassesFastComponents(t *testing.T) {
	const sampleRate = 1000.0
	input := sine(100, sampleRate, 4000)

	output := filters.NewHighpassFilter(sampleRate, 1.0).ProcessBuffer(input)

	assert.Greater(t, steadyRMS(output), 0.6)
}

func TestHighpassCutoffRoundTrip(t *testing.T) {
	hp := filters.NewHighpassFilter(30000, 1.0)

	assert.InDelta(t, 1.0, hp.GetCutoffFrequency(), 0.01)
	assert.Greater(t, hp.GetPoleLocation(), 0.999)
}

func TestFilterReset(t *testing.T) {
	nf := filters.NewNotchFilter(1000, 60, 10)
	first := nf.ProcessBuffer(sine(60, 1000, 100))
	nf.Reset()
	second := nf.ProcessBuffer(sine(60, 1000, 100))

	for i := range first {
		assert.InDelta(t, first[i], second[i], 1e-12)
	}
}
