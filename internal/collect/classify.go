package collect

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"benchreport/internal/extract"
)

var textExtensions = map[string]bool{
	"":     true,
	".txt": true,
	".log": true,
	".csv": true,
	".out": true,
}

// Classify picks the extractor for a file from substrings of its name.
// Files that do not look like benchmark text output are KindUnknown.
func Classify(name string) extract.Kind {
	n := strings.ToLower(name)
	if !textExtensions[filepath.Ext(n)] {
		return extract.KindUnknown
	}
	switch {
	case strings.Contains(n, "wrk"):
		return extract.KindLoadTest
	case strings.Contains(n, "avg_cpu_ips"), strings.Contains(n, "summary_ips"):
		return extract.KindCPUIPS
	case strings.Contains(n, "avg_cpu_waf"), strings.Contains(n, "summary_waf"):
		return extract.KindCPUWAF
	case strings.Contains(n, "series"), strings.Contains(n, "timeline"),
		strings.Contains(n, "req_count"), strings.Contains(n, "reqcount"):
		return extract.KindSeries
	}
	return extract.KindUnknown
}

// cpuPriority puts AVG_CPU_* files ahead of summary_* files.
func cpuPriority(name string) int {
	if strings.Contains(strings.ToLower(name), "avg_cpu") {
		return 0
	}
	return 1
}

var digits = regexp.MustCompile(`[0-9]+`)

// runID takes the first number in a run directory name ("run 3" -> 3).
func runID(name string) (int, bool) {
	d := digits.FindString(name)
	if d == "" {
		return 0, false
	}
	n, err := strconv.Atoi(d)
	if err != nil {
		return 0, false
	}
	return n, true
}
