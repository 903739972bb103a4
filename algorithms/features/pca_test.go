package features_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurosig/spikesort/algorithms/features"
)

func TestFitTransformRankOne(t *testing.T) {
	// All rows lie on a single line, so the first component captures all
	// of the variance.
	waveforms := [][]float64{
		{0, 0, 0},
		{1, 2, 3},
		{2, 4, 6},
		{3, 6, 9},
	}

	red, err := features.NewPCA(2).FitTransform(waveforms)
	require.NoError(t, err)

	require.Len(t, red.Features, 4)
	for _, row := range red.Features {
		assert.Len(t, row, 2)
	}

	require.Len(t, red.ExplainedVariance, 2)
	assert.InDelta(t, 1.0, red.ExplainedVariance[0], 1e-9)
	assert.InDelta(t, 0.0, red.ExplainedVariance[1], 1e-9)
}

func TestFitTransformKnownVarianceSplit(t *testing.T) {
	// Variance 8/3 along the first axis and 2/3 along the second, so the
	// ratios must be 0.8 and 0.2 regardless of sign conventions.
	waveforms := [][]float64{
		{2, 0},
		{-2, 0},
		{0, 1},
		{0, -1},
	}

	red, err := features.NewPCA(2).FitTransform(waveforms)
	require.NoError(t, err)

	require.Len(t, red.ExplainedVariance, 2)
	assert.InDelta(t, 0.8, red.ExplainedVariance[0], 1e-9)
	assert.InDelta(t, 0.2, red.ExplainedVariance[1], 1e-9)

	// The first component aligns with the first axis; projections are
	// determined up to sign.
	require.Len(t, red.Features, 4)
	assert.InDelta(t, 2.0, math.Abs(red.Features[0][0]), 1e-9)
	assert.InDelta(t, 2.0, math.Abs(red.Features[1][0]), 1e-9)
	assert.InDelta(t, 0.0, red.Features[2][0], 1e-9)
	assert.InDelta(t, 0.0, red.Features[3][0], 1e-9)
}

func TestExplainedVarianceProperties(t *testing.T) {
	waveforms := [][]float64{
		{1.2, -0.4, 3.1, 0.2},
		{0.9, 0.1, 2.5, -0.7},
		{-1.5, 2.2, 0.3, 1.1},
		{2.4, -1.9, 1.8, 0.6},
		{0.2, 0.5, -2.2, 1.4},
	}

	red, err := features.NewPCA(3).FitTransform(waveforms)
	require.NoError(t, err)

	sum := 0.0
	for i, ratio := range red.ExplainedVariance {
		assert.GreaterOrEqual(t, ratio, 0.0)
		assert.LessOrEqual(t, ratio, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, ratio, red.ExplainedVariance[i-1])
		}
		sum += ratio
	}
	assert.LessOrEqual(t, sum, 1.0+1e-9)
}

func TestFitTransformDeterministicRatios(t *testing.T) {
	waveforms := [][]float64{
		{1, 2, 0},
		{3, 1, 1},
		{0, 4, 2},
		{2, 2, 5},
	}

	first, err := features.NewPCA(2).FitTransform(waveforms)
	require.NoError(t, err)
	second, err := features.NewPCA(2).FitTransform(waveforms)
	require.NoError(t, err)

	require.Len(t, second.ExplainedVariance, len(first.ExplainedVariance))
	for i := range first.ExplainedVariance {
		assert.InDelta(t, first.ExplainedVariance[i], second.ExplainedVariance[i], 1e-12)
	}
}

func TestFitTransformErrors(t *testing.T) {
	// No rows.
	_, err := features.NewPCA(1).FitTransform(nil)
	require.Error(t, err)

	// More components than rows.
	_, err = features.NewPCA(2).FitTransform([][]float64{{1, 2, 3}})
	require.Error(t, err)

	// More components than columns.
	_, err = features.NewPCA(3).FitTransform([][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10}})
	require.Error(t, err)

	// Ragged rows.
	_, err = features.NewPCA(1).FitTransform([][]float64{{1, 2}, {3}})
	require.Error(t, err)

	// Non-positive component count.
	_, err = features.NewPCA(0).FitTransform([][]float64{{1, 2}, {3, 4}})
	require.Error(t, err)
}
