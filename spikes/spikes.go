package spikes

import (
	"fmt"

	"github.com/neurosig/spikesort/algorithms/features"
	"github.com/neurosig/spikesort/algorithms/peaks"
	"github.com/neurosig/spikesort/algorithms/threshold"
	"github.com/neurosig/spikesort/algorithms/waveform"
	"github.com/neurosig/spikesort/logging"
	"github.com/neurosig/spikesort/spikes/config"
)

// Result is the complete output of one pipeline invocation. Everything in
// it is freshly allocated and owned by the caller; re-running the pipeline
// on identical inputs yields identical spike indices and waveforms.
type Result struct {
	Channel    int     `json:"channel"`
	SampleRate float64 `json:"sample_rate"`

	// MaxAmplitude and Threshold report the amplitude-relative levels;
	// MinHeight/MaxHeight is the band detection actually applied.
	MaxAmplitude float64 `json:"max_amplitude"`
	Threshold    float64 `json:"threshold"`
	MinHeight    float64 `json:"min_height"`
	MaxHeight    float64 `json:"max_height"`

	// SpikeIndices are the detected peak positions in ascending sample
	// order. Waveform rows correspond to the subset of spikes whose
	// window fit inside the signal, in the same order.
	SpikeIndices    []int       `json:"spike_indices"`
	Waveforms       [][]float64 `json:"waveforms"`
	RejectedWindows int         `json:"rejected_windows"`

	// AlignedTime spans [-pre_time, post_time] in milliseconds and is
	// shared by all waveform rows.
	AlignedTime []float64 `json:"aligned_time"`

	Features          [][]float64 `json:"features"`
	ExplainedVariance []float64   `json:"explained_variance_ratio"`
}

// Pipeline runs the four-stage spike detection and feature extraction
// sequence: threshold estimation, band-limited peak detection,
// fixed-window waveform extraction, and PCA reduction. It is stateless
// across invocations; independent invocations may run concurrently as
// long as each owns its own Result.
type Pipeline struct {
	cfg    *config.DetectionConfig
	logger logging.Logger
}

// NewPipeline creates a pipeline with the given detection parameters.
// A nil config selects the defaults of the original acquisition workflow.
func NewPipeline(cfg *config.DetectionConfig) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultDetectionConfig()
	}

	return &Pipeline{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "spike_pipeline",
		}),
	}
}

// Config returns the pipeline's detection parameters.
func (p *Pipeline) Config() *config.DetectionConfig {
	return p.cfg
}

// Run executes the pipeline on one channel of the recording. The channel
// index is explicit; there is no default. Stages fail fast with typed
// errors and never leak partial results.
func (p *Pipeline) Run(rec *Recording, channel int) (*Result, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: recording is nil", ErrMissingPrecondition)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	signal, err := rec.Channel(channel)
	if err != nil {
		return nil, err
	}
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: channel %d signal is empty", ErrInvalidInput, channel)
	}

	// Stage 1: amplitude-relative threshold and admission band.
	estimate, err := threshold.NewEstimator(p.cfg.ThresholdRatio).Estimate(signal)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p.logger.Info("estimated detection threshold", logging.Fields{
		"threshold":     estimate.Threshold,
		"ratio":         p.cfg.ThresholdRatio,
		"max_amplitude": estimate.MaxAmplitude,
	})

	// Stage 2: strict local maxima within the band.
	spikeIndices := peaks.NewDetector(estimate.MinHeight, estimate.MaxHeight).Detect(signal)
	p.logger.Info("detected spikes", logging.Fields{
		"count":      len(spikeIndices),
		"min_height": estimate.MinHeight,
		"max_height": estimate.MaxHeight,
	})

	// Stage 3: fixed-window snippets around each spike.
	preSamples := waveform.SamplesFromMillis(p.cfg.PreMs, rec.SampleRate)
	postSamples := waveform.SamplesFromMillis(p.cfg.PostMs, rec.SampleRate)
	extraction := waveform.NewExtractor(preSamples, postSamples).Extract(signal, spikeIndices)
	if extraction.Rejected > 0 {
		p.logger.Warn("dropped boundary-clipped waveform windows", logging.Fields{
			"rejected": extraction.Rejected,
			"accepted": len(extraction.Waveforms),
		})
	}

	// Stage 4: PCA projection of the waveform rows.
	rows := len(extraction.Waveforms)
	if rows == 0 {
		return nil, fmt.Errorf("%w: no usable waveforms extracted from %d detected spikes; check threshold parameters", ErrInsufficientData, len(spikeIndices))
	}
	if p.cfg.Components > min(rows, extraction.WindowLen) {
		return nil, fmt.Errorf("%w: %d components requested but only %d waveforms of length %d were extracted", ErrInsufficientData, p.cfg.Components, rows, extraction.WindowLen)
	}

	reduction, err := features.NewPCA(p.cfg.Components).FitTransform(extraction.Waveforms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}
	p.logger.Info("reduced waveforms to principal components", logging.Fields{
		"components":         p.cfg.Components,
		"explained_variance": reduction.ExplainedVariance,
	})

	return &Result{
		Channel:           channel,
		SampleRate:        rec.SampleRate,
		MaxAmplitude:      estimate.MaxAmplitude,
		Threshold:         estimate.Threshold,
		MinHeight:         estimate.MinHeight,
		MaxHeight:         estimate.MaxHeight,
		SpikeIndices:      spikeIndices,
		Waveforms:         extraction.Waveforms,
		RejectedWindows:   extraction.Rejected,
		AlignedTime:       waveform.AlignedTime(p.cfg.PreMs, p.cfg.PostMs, extraction.WindowLen),
		Features:          reduction.Features,
		ExplainedVariance: reduction.ExplainedVariance,
	}, nil
}
