package features

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Reduction contains the projected features and per-component explained
// variance of a PCA fit. ExplainedVariance values are fractions of the
// total variance, in [0, 1], non-increasing, and sum to at most 1.
type Reduction struct {
	Features          [][]float64 `json:"features"`
	ExplainedVariance []float64   `json:"explained_variance_ratio"`
	Components        int         `json:"components"`
}

// PCA projects a matrix of waveforms onto its directions of maximal
// variance using principal component analysis.
//
// The component directions are deterministic up to sign and to ordering of
// variance ties; the explained-variance ratios do not depend on either
// convention.
//
// References:
//   - Jolliffe, I. T. (2002). "Principal Component Analysis", 2nd Edition
//   - Hastie, T., Tibshirani, R., & Friedman, J. (2009). "The Elements of
//     Statistical Learning", Section 14.5
type PCA struct {
	components int
}

// NewPCA creates a reducer that keeps the given number of components.
func NewPCA(components int) *PCA {
	return &PCA{components: components}
}

// FitTransform fits the principal components of the waveform rows and
// projects each row onto the leading components. It requires at least one
// row and components <= min(rows, cols); too few rows means detection did
// not find enough usable spikes to support the requested feature count.
func (p *PCA) FitTransform(waveforms [][]float64) (*Reduction, error) {
	rows := len(waveforms)
	if rows == 0 {
		return nil, fmt.Errorf("no waveforms to reduce")
	}
	cols := len(waveforms[0])
	if p.components < 1 {
		return nil, fmt.Errorf("component count must be positive, got %d", p.components)
	}
	if p.components > min(rows, cols) {
		return nil, fmt.Errorf("%d components requested but only %d supported by a %dx%d matrix",
			p.components, min(rows, cols), rows, cols)
	}

	data := mat.NewDense(rows, cols, nil)
	for i, row := range waveforms {
		if len(row) != cols {
			return nil, fmt.Errorf("waveform %d has length %d, want %d", i, len(row), cols)
		}
		data.SetRow(i, row)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("principal component decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	variances := pc.VarsTo(nil)

	// Project the mean-centered rows onto the leading components.
	centered := mat.NewDense(rows, cols, nil)
	means := columnMeans(data)
	for i := range rows {
		for j := range cols {
			centered.Set(i, j, data.At(i, j)-means[j])
		}
	}

	var projected mat.Dense
	projected.Mul(centered, vectors.Slice(0, cols, 0, p.components))

	features := make([][]float64, rows)
	for i := range features {
		features[i] = make([]float64, p.components)
		mat.Row(features[i], i, &projected)
	}

	// Ratio of each retained component against the total variance across
	// all components.
	total := floats.Sum(variances)
	ratios := make([]float64, p.components)
	if total > 0 {
		for i := range ratios {
			ratios[i] = variances[i] / total
		}
	}

	return &Reduction{
		Features:          features,
		ExplainedVariance: ratios,
		Components:        p.components,
	}, nil
}

// Components returns the configured component count.
func (p *PCA) Components() int {
	return p.components
}

// columnMeans computes the mean of each column of m.
func columnMeans(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	means := make([]float64, cols)
	col := make([]float64, rows)
	for j := range cols {
		mat.Col(col, j, m)
		means[j] = stat.Mean(col, nil)
	}
	return means
}
