package stats

import (
	"github.com/HdrHistogram/hdrhistogram-go"
)

// MaxCount is the largest per-interval count the histogram tracks; larger
// samples are clamped to it.
const MaxCount = 100_000_000

// Histogram wraps an hdrhistogram sized for per-interval request counts.
type Histogram struct {
	hist *hdrhistogram.Histogram
}

func NewHistogram() *Histogram {
	// 1 to 100M requests per interval, 3 significant figures
	return &Histogram{hist: hdrhistogram.New(1, MaxCount, 3)}
}

// RecordValue records one interval count.
func (h *Histogram) RecordValue(v int64) error {
	if v > MaxCount {
		v = MaxCount
	}
	if v < 0 {
		v = 0
	}
	return h.hist.RecordValue(v)
}

func (h *Histogram) ValueAtQuantile(q float64) int64 {
	return h.hist.ValueAtQuantile(q)
}

func (h *Histogram) Mean() float64 {
	return h.hist.Mean()
}

func (h *Histogram) Max() int64 {
	return h.hist.Max()
}

func (h *Histogram) TotalCount() int64 {
	return h.hist.TotalCount()
}
