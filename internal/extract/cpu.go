package extract

import (
	"math"
	"regexp"
	"strconv"
)

// AVG_CPU_* files carry a line such as
//
//	AVG busy (all cpus) = 11.75 % (avg idle=88.25%) over 1990 samples
//
// while summary_* files use looser "busy: N%" / "idle = N %" lines.
// The AVG forms are tried first so that per-sample lines earlier in a
// file do not shadow the average.
var (
	busyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)avg\s+busy[^=:%\n]*[=:]\s*([0-9]+(?:\.[0-9]+)?)\s*%`),
		regexp.MustCompile(`(?i)busy[^=:%\n]*[=:]\s*([0-9]+(?:\.[0-9]+)?)\s*%`),
	}
	idlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)avg\s+idle[^=:%\n]*[=:]\s*([0-9]+(?:\.[0-9]+)?)\s*%`),
		regexp.MustCompile(`(?i)idle[^=:%\n]*[=:]\s*([0-9]+(?:\.[0-9]+)?)\s*%`),
	}
	samplesPattern = regexp.MustCompile(`(?i)over\s*([0-9]+)\s*samples`)
)

// CPU extracts the busy/idle percentages and the sample count of a CPU
// summary, storing them under the given field names. When only the idle
// percentage is present, busy is derived as 100 - idle.
func CPU(text string, busy, idle, samples Field) Fields {
	out := Fields{}

	b, hasBusy := firstFloat(busyPatterns, text)
	i, hasIdle := firstFloat(idlePatterns, text)
	switch {
	case hasBusy:
		out[busy] = b
		if hasIdle {
			out[idle] = i
		}
	case hasIdle:
		out[idle] = i
		out[busy] = math.Round((100-i)*100) / 100
	}

	if m := samplesPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			out[samples] = float64(n)
		}
	}
	return out
}

func firstFloat(patterns []*regexp.Regexp, text string) (float64, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
