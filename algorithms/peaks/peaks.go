package peaks

// Detector scans a signal for strict local maxima whose amplitude falls
// inside a closed admission band. A sample qualifies when it is greater
// than both immediate neighbors, which means the first and last samples of
// a signal are never reported.
type Detector struct {
	minHeight float64
	maxHeight float64
}

// NewDetector creates a detector for the band [minHeight, maxHeight].
// An inverted band (minHeight > maxHeight) is allowed and simply admits
// nothing.
func NewDetector(minHeight, maxHeight float64) *Detector {
	return &Detector{
		minHeight: minHeight,
		maxHeight: maxHeight,
	}
}

// Detect returns the indices of all strict local maxima within the band,
// in ascending order with no duplicates. Signals shorter than three
// samples cannot contain an interior maximum and yield an empty result.
func (d *Detector) Detect(signal []float64) []int {
	indices := []int{}

	for i := 1; i < len(signal)-1; i++ {
		v := signal[i]
		if v > signal[i-1] && v > signal[i+1] &&
			v >= d.minHeight && v <= d.maxHeight {
			indices = append(indices, i)
		}
	}

	return indices
}

// Band returns the admission band the detector applies.
func (d *Detector) Band() (minHeight, maxHeight float64) {
	return d.minHeight, d.maxHeight
}
