package plotting_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosig/spikesort/plotting"
)

func TestArtifactPath(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	path := plotting.ArtifactPath("out", "session1", "spike_waveform", at)
	assert.Equal(t, filepath.Join("out", "session1_spike_waveform_2025-03-14_09-26-53.png"), path)
}

func TestSaveWaveforms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waveforms.png")

	alignedTime := []float64{-1.0, -0.5, 0, 0.5, 1.0}
	waveforms := [][]float64{
		{0, 1, 2.5, 1, 0},
		{0.2, 1.1, 2.2, 0.9, 0.1},
	}

	require.NoError(t, plotting.SaveWaveforms(alignedTime, waveforms, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveSignal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signal.png")

	timeVec := []float64{0, 0.1, 0.2, 0.3, 0.4}
	signal := []float64{0, 2.5, 0, 2.2, 0}

	require.NoError(t, plotting.SaveSignal(timeVec, signal, []int{1, 3}, path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSaveSignalMismatchedLengths(t *testing.T) {
	err := plotting.SaveSignal([]float64{0, 1}, []float64{0}, nil, "unused.png")
	assert.Error(t, err)
}

func TestSaveSignalSpikeOutOfRange(t *testing.T) {
	err := plotting.SaveSignal([]float64{0, 1}, []float64{0, 1}, []int{5}, "unused.png")
	assert.Error(t, err)
}

func TestSaveFeatures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pca.png")

	features := [][]float64{
		{0.5, -0.2},
		{-0.3, 0.4},
		{0.1, 0.1},
	}

	require.NoError(t, plotting.SaveFeatures(features, path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSaveFeaturesTooFewComponents(t *testing.T) {
	err := plotting.SaveFeatures([][]float64{{0.5}}, "unused.png")
	assert.Error(t, err)
}
