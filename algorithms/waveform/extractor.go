package waveform

// Extraction holds the fixed-length snippets cut around accepted spikes.
// Waveform rows follow the ascending order of AcceptedIndices, which is a
// subset of the spike indices handed to Extract. Rejected counts the
// spikes whose window would have been clipped by a signal boundary.
type Extraction struct {
	Waveforms       [][]float64 `json:"waveforms"`
	AcceptedIndices []int       `json:"accepted_indices"`
	Rejected        int         `json:"rejected"`
	WindowLen       int         `json:"window_len"`
}

// Extractor slices fixed-length windows of preSamples+postSamples samples
// around spike indices. Windows that do not fit entirely inside the signal
// are dropped rather than padded: a truncated snippet is unreliable, not
// erroneous.
type Extractor struct {
	preSamples  int
	postSamples int
}

// NewExtractor creates an extractor with the given window half-lengths in
// samples.
func NewExtractor(preSamples, postSamples int) *Extractor {
	return &Extractor{
		preSamples:  preSamples,
		postSamples: postSamples,
	}
}

// SamplesFromMillis converts a window half-length in milliseconds to a
// sample count, truncating toward zero.
func SamplesFromMillis(ms, sampleRate float64) int {
	return int(ms / 1000.0 * sampleRate)
}

// Extract cuts the window [s-preSamples, s+postSamples) for each spike
// index s, clamped to the signal bounds. Only windows of exactly
// preSamples+postSamples samples are kept. Each kept row is a copy, so
// mutating it cannot alias back into the signal.
func (e *Extractor) Extract(signal []float64, spikes []int) *Extraction {
	windowLen := e.preSamples + e.postSamples

	out := &Extraction{
		Waveforms:       [][]float64{},
		AcceptedIndices: []int{},
		WindowLen:       windowLen,
	}

	for _, s := range spikes {
		start := max(0, s-e.preSamples)
		end := min(len(signal), s+e.postSamples)
		if end-start != windowLen || windowLen <= 0 {
			out.Rejected++
			continue
		}

		row := make([]float64, windowLen)
		copy(row, signal[start:end])
		out.Waveforms = append(out.Waveforms, row)
		out.AcceptedIndices = append(out.AcceptedIndices, s)
	}

	return out
}

// WindowLen returns the fixed window length in samples.
func (e *Extractor) WindowLen() int {
	return e.preSamples + e.postSamples
}

// AlignedTime returns n evenly spaced values spanning [-preMs, postMs],
// the shared time axis for plotting extracted waveforms. Spacing matches
// a linspace over both endpoints; n == 1 yields just -preMs.
func AlignedTime(preMs, postMs float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{-preMs}
	}

	axis := make([]float64, n)
	step := (postMs + preMs) / float64(n-1)
	for i := range axis {
		axis[i] = -preMs + float64(i)*step
	}
	return axis
}
