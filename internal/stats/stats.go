package stats

import (
	"math"
)

// Summary describes a timestamped request-count series.
type Summary struct {
	Points int
	P50    float64
	P99    float64
	Max    float64
	Mean   float64
}

// Summarize builds a Summary from per-interval counts. Percentiles come
// from the histogram and are exact for counts below 2048, within 0.1%
// above that.
func Summarize(counts []float64) Summary {
	h := NewHistogram()
	for _, c := range counts {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		h.RecordValue(int64(math.Round(c)))
	}
	if h.TotalCount() == 0 {
		return Summary{}
	}
	return Summary{
		Points: int(h.TotalCount()),
		P50:    float64(h.ValueAtQuantile(50)),
		P99:    float64(h.ValueAtQuantile(99)),
		Max:    float64(h.Max()),
		Mean:   h.Mean(),
	}
}
