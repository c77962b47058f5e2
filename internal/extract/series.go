package extract

import (
	"bufio"
	"math"
	"strconv"
	"strings"

	"benchreport/internal/stats"
)

// SeriesPoint is one sample of a timestamped request-count series.
type SeriesPoint struct {
	Stamp string
	Count float64
}

// ParseSeries reads "<timestamp><sep><count>" lines where the separator is
// a comma, semicolon, tab or spaces. Lines whose last column is not a
// finite, non-negative number (headers, comments, garbage) are skipped.
func ParseSeries(text string) []SeriesPoint {
	var points []SeriesPoint
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '\t' || r == ' '
		})
		if len(cols) < 2 {
			continue
		}
		n, err := strconv.ParseFloat(cols[len(cols)-1], 64)
		if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			continue
		}
		points = append(points, SeriesPoint{
			Stamp: strings.Join(cols[:len(cols)-1], " "),
			Count: n,
		})
	}
	return points
}

// Series summarizes a request-count series: number of points, median,
// 99th percentile and maximum count per interval.
func Series(text string) Fields {
	points := ParseSeries(text)
	if len(points) == 0 {
		return Fields{}
	}
	counts := make([]float64, len(points))
	for i, p := range points {
		counts[i] = p.Count
	}
	s := stats.Summarize(counts)
	return Fields{
		SeriesPoints: float64(s.Points),
		SeriesP50:    s.P50,
		SeriesP99:    s.P99,
		SeriesMax:    s.Max,
	}
}
