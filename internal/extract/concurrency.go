package extract

import (
	"regexp"
	"strconv"
)

var (
	concurrencyToken  = regexp.MustCompile(`(?i)_c([0-9]+)_`)
	concurrencySuffix = regexp.MustCompile(`(?i)(?:^|_)([0-9]+)\.txt$`)
	concurrencyDir    = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])c([0-9]+)(?:$|[^0-9])`)
)

// Concurrency derives the concurrency level from a file name, either from
// a "_c<N>_" token (wrk_via_waf_c500_t4_200s_run1.txt) or from a
// "_<N>.txt" suffix (AVG_CPU_ips_500.txt). It returns false when neither
// convention matches.
func Concurrency(name string) (int, bool) {
	for _, re := range []*regexp.Regexp{concurrencyToken, concurrencySuffix} {
		if m := re.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// ConcurrencyFromDir looks for a standalone "c<N>" token in a directory
// name such as "run 2 c300" or "INJ_WEB_c1000".
func ConcurrencyFromDir(name string) (int, bool) {
	m := concurrencyDir.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
