// Command spikesort runs the spike detection and feature extraction
// pipeline on one channel of a parsed recording and optionally writes
// waveform, signal, and PCA plots.
//
// The proprietary device format parser is an external collaborator; this
// command accepts its output as a JSON document with the amplifier_data,
// t_amplifier, and sample_rate fields.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/neurosig/spikesort/algorithms/filters"
	"github.com/neurosig/spikesort/algorithms/spectral"
	"github.com/neurosig/spikesort/logging"
	"github.com/neurosig/spikesort/plotting"
	"github.com/neurosig/spikesort/spikes"
	"github.com/neurosig/spikesort/spikes/config"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "path to a parsed recording (JSON)")
		channel    = flag.Int("channel", 0, "channel index to analyze")
		ratio      = flag.Float64("ratio", 0.3, "threshold ratio in (0, 1]")
		preMs      = flag.Float64("pre", 1.0, "waveform window before the spike (ms)")
		postMs     = flag.Float64("post", 2.0, "waveform window after the spike (ms)")
		components = flag.Int("components", 2, "number of principal components")
		notch      = flag.Bool("notch", false, "apply a mains notch filter before detection")
		notchFreq  = flag.Float64("notch-freq", 60.0, "notch center frequency (Hz)")
		highpass   = flag.Bool("highpass", false, "apply a drift high-pass filter before detection")
		hpCutoff   = flag.Float64("highpass-cutoff", 1.0, "high-pass cutoff frequency (Hz)")
		outDir     = flag.String("out-dir", ".", "directory for plot images")
		outBase    = flag.String("out", "", "base name for plot images; no plots if empty")
		spectrum   = flag.Bool("spectrum", false, "log the dominant frequency of the channel before and after filtering")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	logger := logging.WithFields(logging.Fields{"component": "spikesort"})
	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	if *inputPath == "" {
		logger.Fatal(fmt.Errorf("missing -input flag"), "no recording given")
	}

	rec, err := loadRecording(*inputPath)
	if err != nil {
		logger.Fatal(err, "failed to load recording", logging.Fields{"path": *inputPath})
	}

	signal, err := rec.Channel(*channel)
	if err != nil {
		logger.Fatal(err, "invalid channel", logging.Fields{"channel": *channel})
	}

	if *spectrum {
		sp := spectral.NewSpectrum(rec.SampleRate)
		logger.Info("pre-filter spectrum", logging.Fields{
			"dominant_hz": sp.DominantFrequency(signal),
		})
	}

	filterCfg := &config.FilterConfig{
		EnableNotch:    *notch,
		NotchFreq:      *notchFreq,
		NotchBandwidth: 10.0,
		EnableHighpass: *highpass,
		HighpassCutoff: *hpCutoff,
	}
	conditioned, err := conditionChannel(rec, *channel, filterCfg)
	if err != nil {
		logger.Fatal(err, "failed to condition signal")
	}

	if *spectrum && (*notch || *highpass) {
		sp := spectral.NewSpectrum(conditioned.SampleRate)
		sig, _ := conditioned.Channel(*channel)
		logger.Info("post-filter spectrum", logging.Fields{
			"dominant_hz": sp.DominantFrequency(sig),
		})
	}

	pipeline := spikes.NewPipeline(&config.DetectionConfig{
		ThresholdRatio: *ratio,
		PreMs:          *preMs,
		PostMs:         *postMs,
		Components:     *components,
	})

	result, err := pipeline.Run(conditioned, *channel)
	if err != nil {
		logger.Fatal(err, "pipeline failed", logging.Fields{"channel": *channel})
	}

	logger.Info("analysis complete", logging.Fields{
		"spikes":             len(result.SpikeIndices),
		"waveforms":          len(result.Waveforms),
		"rejected_windows":   result.RejectedWindows,
		"explained_variance": result.ExplainedVariance,
	})

	if *outBase != "" {
		if err := savePlots(conditioned, result, *channel, *outDir, *outBase); err != nil {
			logger.Fatal(err, "failed to save plots")
		}
	}
}

// loadRecording decodes a parsed recording from a JSON file.
func loadRecording(path string) (*spikes.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rec spikes.Recording
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding recording: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// conditionChannel applies the configured upstream filters to one channel,
// returning a recording with that channel replaced. The input recording is
// never mutated.
func conditionChannel(rec *spikes.Recording, channel int, cfg *config.FilterConfig) (*spikes.Recording, error) {
	if !cfg.EnableNotch && !cfg.EnableHighpass {
		return rec, nil
	}
	if err := cfg.Validate(rec.SampleRate); err != nil {
		return nil, err
	}

	signal, err := rec.Channel(channel)
	if err != nil {
		return nil, err
	}

	filtered := make([]float64, len(signal))
	copy(filtered, signal)

	if cfg.EnableNotch {
		filtered = filters.NewNotchFilter(rec.SampleRate, cfg.NotchFreq, cfg.NotchBandwidth).ProcessBuffer(filtered)
	}
	if cfg.EnableHighpass {
		filtered = filters.NewHighpassFilter(rec.SampleRate, cfg.HighpassCutoff).ProcessBuffer(filtered)
	}

	data := make([][]float64, len(rec.AmplifierData))
	copy(data, rec.AmplifierData)
	data[channel] = filtered

	return &spikes.Recording{
		AmplifierData: data,
		Time:          rec.Time,
		SampleRate:    rec.SampleRate,
	}, nil
}

// savePlots writes the three artifact images with timestamped names.
func savePlots(rec *spikes.Recording, result *spikes.Result, channel int, dir, base string) error {
	now := time.Now()
	signal, err := rec.Channel(channel)
	if err != nil {
		return err
	}

	waveformPath := plotting.ArtifactPath(dir, base, "spike_waveform", now)
	if err := plotting.SaveWaveforms(result.AlignedTime, result.Waveforms, waveformPath); err != nil {
		return err
	}
	logging.Info("saved waveform plot", logging.Fields{"path": waveformPath})

	signalPath := plotting.ArtifactPath(dir, base, "highlighted_spikes", now)
	if err := plotting.SaveSignal(rec.Time, signal, result.SpikeIndices, signalPath); err != nil {
		return err
	}
	logging.Info("saved signal plot", logging.Fields{"path": signalPath})

	if len(result.ExplainedVariance) >= 2 {
		pcaPath := plotting.ArtifactPath(dir, base, "pca", now)
		if err := plotting.SaveFeatures(result.Features, pcaPath); err != nil {
			return err
		}
		logging.Info("saved PCA plot", logging.Fields{"path": pcaPath})
	}

	return nil
}
