// Package plotting renders detection results to PNG images. It is a
// presentation consumer only: nothing here feeds back into detection or
// feature results.
package plotting

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	waveformGray = color.RGBA{R: 128, G: 128, B: 128, A: 120}
	markerRed    = color.RGBA{R: 220, G: 30, B: 30, A: 255}
	featureBlue  = color.RGBA{R: 40, G: 80, B: 200, A: 180}
)

// ArtifactPath builds the output path for a named artifact:
// <dir>/<base>_<kind>_<timestamp>.png
func ArtifactPath(dir, base, kind string, at time.Time) string {
	name := fmt.Sprintf("%s_%s_%s.png", base, kind, at.Format("2006-01-02_15-04-05"))
	return filepath.Join(dir, name)
}

// SaveWaveforms overlays all aligned waveforms on the shared time axis
// with a vertical marker at the spike time (t=0) and writes a PNG.
func SaveWaveforms(alignedTime []float64, waveforms [][]float64, path string) error {
	p := plot.New()
	p.Title.Text = "Aligned Spike Waveforms"
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Amplitude (uV)"

	var minV, maxV float64
	for _, wf := range waveforms {
		pts := make(plotter.XYs, len(wf))
		for i, v := range wf {
			pts[i].X = alignedTime[i]
			pts[i].Y = v
			minV = min(minV, v)
			maxV = max(maxV, v)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building waveform trace: %w", err)
		}
		line.Color = waveformGray
		p.Add(line)
	}

	marker, err := plotter.NewLine(plotter.XYs{{X: 0, Y: minV}, {X: 0, Y: maxV}})
	if err != nil {
		return fmt.Errorf("building spike-time marker: %w", err)
	}
	marker.Color = markerRed
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(marker)
	p.Legend.Add("Spike Time (t=0)", marker)

	return p.Save(12*vg.Inch, 6*vg.Inch, path)
}

// SaveSignal plots the full signal trace against the recording time
// vector with the detected spikes highlighted as a scatter overlay.
func SaveSignal(timeVec, signal []float64, spikeIndices []int, path string) error {
	if len(timeVec) != len(signal) {
		return fmt.Errorf("time vector has %d samples but signal has %d", len(timeVec), len(signal))
	}

	p := plot.New()
	p.Title.Text = "Amplitude with Detected Spikes"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude (uV)"

	trace := make(plotter.XYs, len(signal))
	for i := range signal {
		trace[i].X = timeVec[i]
		trace[i].Y = signal[i]
	}
	line, err := plotter.NewLine(trace)
	if err != nil {
		return fmt.Errorf("building signal trace: %w", err)
	}
	p.Add(line)
	p.Legend.Add("Amplitude (Signal)", line)

	marks := make(plotter.XYs, 0, len(spikeIndices))
	for _, s := range spikeIndices {
		if s < 0 || s >= len(signal) {
			return fmt.Errorf("spike index %d out of range [0, %d)", s, len(signal))
		}
		marks = append(marks, plotter.XY{X: timeVec[s], Y: signal[s]})
	}
	scatter, err := plotter.NewScatter(marks)
	if err != nil {
		return fmt.Errorf("building spike overlay: %w", err)
	}
	scatter.GlyphStyle.Color = markerRed
	scatter.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(scatter)
	p.Legend.Add("Detected Spikes", scatter)

	return p.Save(30*vg.Inch, 6*vg.Inch, path)
}

// SaveFeatures renders a 2-D scatter of the first two principal
// components of each waveform.
func SaveFeatures(featureMatrix [][]float64, path string) error {
	p := plot.New()
	p.Title.Text = "PCA of Spike Waveforms (2D Projection)"
	p.X.Label.Text = "Principal Component 1"
	p.Y.Label.Text = "Principal Component 2"

	pts := make(plotter.XYs, 0, len(featureMatrix))
	for i, row := range featureMatrix {
		if len(row) < 2 {
			return fmt.Errorf("feature row %d has %d components, want at least 2", i, len(row))
		}
		pts = append(pts, plotter.XY{X: row[0], Y: row[1]})
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building feature scatter: %w", err)
	}
	scatter.GlyphStyle.Color = featureBlue
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}
