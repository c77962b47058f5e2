package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wrkOutput = `Running 3m test @ http://10.0.0.3/
  4 threads and 500 connections
  Thread Stats   Avg      Stdev     Max   +/- Stdev
    Latency   212.31ms  301.99ms   2.00s    88.12%
    Req/Sec   601.21    155.09     1.02k    71.99%
  Latency Distribution
     50%   65.41ms
     75%  541.17ms
     90%  840.63ms
     99%    1.03s
  472600 requests in 200.00s, 1.10GB read
  Socket errors: connect 0, read 12, write 0, timeout 34
  Non-2xx or 3xx responses: 7
Requests/sec:   2363.00
Transfer/sec:      5.63MB
`

func TestLoadTest(t *testing.T) {
	got := LoadTest(wrkOutput)

	assert.Equal(t, Fields{
		RequestsPerSec: 2363.00,
		TransferPerSec: 5765.12,
		P50:            65.41,
		P75:            541.17,
		P90:            840.63,
		P99:            1030.0,
		SocketErrors:   46,
		Non2xx:         7,
	}, got)
}

func TestLoadTestRequestsPerSecExact(t *testing.T) {
	got := LoadTest("Requests/sec: 2363.00\n")
	require.Contains(t, got, RequestsPerSec)
	assert.Equal(t, 2363.00, got[RequestsPerSec])
}

func TestLoadTestPartial(t *testing.T) {
	got := LoadTest("Requests/sec: 10.5\n     50%   1.20ms\n")

	assert.Equal(t, Fields{RequestsPerSec: 10.5, P50: 1.2}, got)
	assert.NotContains(t, got, SocketErrors)
	assert.NotContains(t, got, P99)
}

func TestLoadTestInlinePercentiles(t *testing.T) {
	got := LoadTest("latency 50% 65.54ms 75% 541.17ms 90% 840.63ms 99% 2.5s\n")

	assert.Equal(t, 65.54, got[P50])
	assert.Equal(t, 541.17, got[P75])
	assert.Equal(t, 840.63, got[P90])
	assert.Equal(t, 2500.0, got[P99])
}

func TestLoadTestWrk2Percentiles(t *testing.T) {
	text := "  Latency Distribution (HdrHistogram - Recorded Latency)\n" +
		" 50.000%    1.53ms\n 75.000%    2.10ms\n 90.000%    3.00ms\n 99.000%  850.00us\n"
	got := LoadTest(text)

	assert.Equal(t, 1.53, got[P50])
	assert.Equal(t, 2.1, got[P75])
	assert.Equal(t, 3.0, got[P90])
	assert.Equal(t, 0.85, got[P99])
}

func TestLoadTestStdevDoesNotLookLikeP99(t *testing.T) {
	text := "    Req/Sec   601.21    155.09     1.02k    71.99%\n"
	assert.NotContains(t, LoadTest(text), P99)
}

func TestLoadTestEmpty(t *testing.T) {
	assert.Empty(t, LoadTest(""))
	assert.Empty(t, LoadTest("unable to connect to 10.0.0.3:80 Connection refused\n"))
}

func TestMillis(t *testing.T) {
	tests := []struct {
		value, unit string
		want        float64
	}{
		{"65.41", "ms", 65.41},
		{"1.03", "s", 1030.0},
		{"850", "us", 0.85},
		{"1.5", "m", 90000},
		{"2", "", 2000},
		{"12", "MS", 12},
	}
	for _, tt := range tests {
		t.Run(tt.value+tt.unit, func(t *testing.T) {
			got, ok := Millis(tt.value, tt.unit)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Millis("abc", "ms")
	assert.False(t, ok)
	_, ok = Millis("1", "parsecs")
	assert.False(t, ok)
}

func TestKilobytes(t *testing.T) {
	got, ok := Kilobytes("5.63", "MB")
	require.True(t, ok)
	assert.Equal(t, 5765.12, got)

	got, ok = Kilobytes("512", "B")
	require.True(t, ok)
	assert.Equal(t, 0.5, got)

	got, ok = Kilobytes("300.5", "KB")
	require.True(t, ok)
	assert.Equal(t, 300.5, got)
}

func TestLoadTestUnitDoesNotSpanLines(t *testing.T) {
	text := "     50%   12\nmax connections reached\n     90%   15\nhosts: 3\n"
	got := LoadTest(text)

	assert.Equal(t, 12000.0, got[P50])
	assert.Equal(t, 15000.0, got[P90])
}
