package extract

// Field names one metric column of the summary table.
type Field string

const (
	BusyIPS    Field = "avg_busy_ips"
	IdleIPS    Field = "avg_idle_ips"
	SamplesIPS Field = "samples_ips"
	BusyWAF    Field = "avg_busy_waf"
	IdleWAF    Field = "avg_idle_waf"
	SamplesWAF Field = "samples_waf"

	RequestsPerSec Field = "requests_per_sec"
	TransferPerSec Field = "transfer_per_sec" // KB/s
	P50            Field = "p50"              // ms
	P75            Field = "p75"
	P90            Field = "p90"
	P99            Field = "p99"
	SocketErrors   Field = "socket_errors"
	Non2xx         Field = "non_2xx"

	SeriesPoints Field = "series_points"
	SeriesP50    Field = "series_p50"
	SeriesP99    Field = "series_p99"
	SeriesMax    Field = "series_max"
)

// MetricFields lists every metric in column order.
var MetricFields = []Field{
	BusyIPS, IdleIPS, SamplesIPS,
	BusyWAF, IdleWAF, SamplesWAF,
	RequestsPerSec, TransferPerSec,
	P50, P75, P90, P99,
	SocketErrors, Non2xx,
	SeriesPoints, SeriesP50, SeriesP99, SeriesMax,
}

// IsCount reports whether the field holds an integer count.
func (f Field) IsCount() bool {
	switch f {
	case SamplesIPS, SamplesWAF, SocketErrors, Non2xx, SeriesPoints:
		return true
	}
	return false
}

// Fields holds the metrics recognized in one file. A missing key means
// the metric was not found, which is different from a zero value.
type Fields map[Field]float64

// Merge copies the fields of src that are not already set in f.
func (f Fields) Merge(src Fields) {
	for k, v := range src {
		if _, ok := f[k]; !ok {
			f[k] = v
		}
	}
}

// Kind tags a file with the extractor that understands it.
type Kind int

const (
	KindUnknown Kind = iota
	KindCPUIPS
	KindCPUWAF
	KindLoadTest
	KindSeries
)

func (k Kind) String() string {
	switch k {
	case KindCPUIPS:
		return "cpu_ips"
	case KindCPUWAF:
		return "cpu_waf"
	case KindLoadTest:
		return "loadtest"
	case KindSeries:
		return "series"
	default:
		return "unknown"
	}
}

// Extract runs the extractor for kind over text. It never fails:
// anything it cannot recognize is simply left out of the result.
func Extract(kind Kind, text string) Fields {
	switch kind {
	case KindCPUIPS:
		return CPU(text, BusyIPS, IdleIPS, SamplesIPS)
	case KindCPUWAF:
		return CPU(text, BusyWAF, IdleWAF, SamplesWAF)
	case KindLoadTest:
		return LoadTest(text)
	case KindSeries:
		return Series(text)
	default:
		return Fields{}
	}
}
