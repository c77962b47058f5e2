package extract

import (
	"regexp"
	"strconv"
)

const (
	number      = `([0-9]+(?:\.[0-9]+)?)`
	latencyUnit = `(us|µs|ms|s|m|h)?`
)

var (
	requestsPattern = regexp.MustCompile(`Requests/sec:\s*` + number)
	transferPattern = regexp.MustCompile(`(?i)Transfer/sec:\s*` + number + `[ \t]*([KMG]?i?B|[KMG])?`)
	socketPattern   = regexp.MustCompile(`Socket errors:([^\n]*)`)
	non2xxPattern   = regexp.MustCompile(`Non-2xx or 3xx responses:\s*([0-9]+)`)
	digitsPattern   = regexp.MustCompile(`[0-9]+`)

	// One percentile per line, as printed by wrk --latency ("50%") or
	// wrk2 ("50.000%").
	percentileLines = map[Field]*regexp.Regexp{
		P50: percentileLine("50"),
		P75: percentileLine("75"),
		P90: percentileLine("90"),
		P99: percentileLine("99"),
	}

	// Some tools squeeze the distribution on a single line.
	inlinePercentiles = regexp.MustCompile(`(?i)(?:^|[^0-9.])50%[^0-9\n]*` + number + `[ \t]*` + latencyUnit +
		`[^\n]*?[^0-9.]75%[^0-9\n]*` + number + `[ \t]*` + latencyUnit +
		`[^\n]*?[^0-9.]90%[^0-9\n]*` + number + `[ \t]*` + latencyUnit)
	inlineP99 = regexp.MustCompile(`(?i)(?:^|[^0-9.])99%[^0-9\n]*` + number + `[ \t]*` + latencyUnit)
)

// Unit and value must share a line: "50%  12" followed by a line starting
// with "m" is 12 seconds, not 12 minutes.
func percentileLine(p string) *regexp.Regexp {
	return regexp.MustCompile(`(?mi)^[ \t]*` + p + `(?:\.0+)?%[ \t]+` + number + `[ \t]*` + latencyUnit)
}

// LoadTest extracts throughput, transfer rate, latency percentiles and
// error counts from wrk output. Latencies are returned in milliseconds
// and transfer rates in KB/s.
func LoadTest(text string) Fields {
	out := Fields{}

	if m := requestsPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			out[RequestsPerSec] = v
		}
	}

	if m := transferPattern.FindStringSubmatch(text); m != nil {
		if v, ok := Kilobytes(m[1], m[2]); ok {
			out[TransferPerSec] = v
		}
	}

	for field, re := range percentileLines {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, ok := Millis(m[1], m[2]); ok {
				out[field] = v
			}
		}
	}
	if m := inlinePercentiles.FindStringSubmatch(text); m != nil {
		for i, field := range []Field{P50, P75, P90} {
			if v, ok := Millis(m[1+2*i], m[2+2*i]); ok {
				out[field] = v
			}
		}
	}
	if _, ok := out[P99]; !ok {
		if m := inlineP99.FindStringSubmatch(text); m != nil {
			if v, ok := Millis(m[1], m[2]); ok {
				out[P99] = v
			}
		}
	}

	if m := socketPattern.FindStringSubmatch(text); m != nil {
		var total int64
		for _, d := range digitsPattern.FindAllString(m[1], -1) {
			n, err := strconv.ParseInt(d, 10, 64)
			if err == nil {
				total += n
			}
		}
		out[SocketErrors] = float64(total)
	}

	if m := non2xxPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			out[Non2xx] = float64(n)
		}
	}

	return out
}
