package extract

import (
	"math"
	"strconv"
	"strings"
)

// wrk prints latencies with one of these suffixes; a bare number is seconds.
var latencyScale = map[string]float64{
	"us": 0.001,
	"µs": 0.001,
	"ms": 1,
	"s":  1000,
	"m":  60 * 1000,
	"h":  60 * 60 * 1000,
	"":   1000,
}

var transferScale = map[string]float64{
	"b":   1.0 / 1024,
	"kb":  1,
	"k":   1,
	"kib": 1,
	"mb":  1024,
	"m":   1024,
	"mib": 1024,
	"gb":  1024 * 1024,
	"g":   1024 * 1024,
	"gib": 1024 * 1024,
	"":    1,
}

// Millis converts a latency value and its unit suffix to milliseconds.
func Millis(value, unit string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	scale, ok := latencyScale[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, false
	}
	return round6(v * scale), true
}

// Kilobytes converts a transfer value and its unit suffix to KB.
func Kilobytes(value, unit string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	scale, ok := transferScale[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, false
	}
	return round6(v * scale), true
}

// round6 drops the float noise left by unit scaling so that 1.03s
// comes out as 1030 and not 1030.0000000000002.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
