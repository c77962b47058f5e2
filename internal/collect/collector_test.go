package collect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchreport/internal/extract"
	"benchreport/internal/results"
)

const wrkRun1 = `Running 3m test @ http://10.0.0.3/
  4 threads and 500 connections
  Latency Distribution
     50%   65.41ms
     75%  541.17ms
     90%  840.63ms
     99%    1.03s
  472600 requests in 200.00s, 1.10GB read
Requests/sec:   2363.00
Transfer/sec:      5.63MB
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func find(t *testing.T, tbl *results.Table, sc, run string) results.Record {
	t.Helper()
	for _, r := range tbl.Records {
		if r.Scenario == sc && r.Run == run {
			return r
		}
	}
	t.Fatalf("no record for %s/%s", sc, run)
	return results.Record{}
}

func TestCollectEndToEndRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "INJ_IPS_WEB_NO_PROXY", "run 1", "AVG_CPU_ips_500.txt"),
		"AVG busy (all cpus) = 22.51 %\n")
	writeFile(t, filepath.Join(root, "INJ_IPS_WEB_NO_PROXY", "run 1", "wrk_via_waf_c500_t4_200s_run1.txt"), wrkRun1)

	res, err := New(Options{}).Collect(root)
	require.NoError(t, err)
	require.Equal(t, 1, res.Table.Len())

	r := res.Table.Records[0]
	assert.Equal(t, "INJ_IPS_WEB_NO_PROXY", r.Scenario)
	assert.Equal(t, 1, r.RunID)
	assert.True(t, r.HasConcurrency)
	assert.Equal(t, 500, r.Concurrency)

	v, ok := r.Get(extract.BusyIPS)
	assert.True(t, ok)
	assert.Equal(t, 22.51, v)
	v, ok = r.Get(extract.RequestsPerSec)
	assert.True(t, ok)
	assert.Equal(t, 2363.00, v)
	v, ok = r.Get(extract.P50)
	assert.True(t, ok)
	assert.Equal(t, 65.41, v)

	for _, f := range []extract.Field{extract.BusyWAF, extract.IdleWAF, extract.SamplesWAF} {
		_, ok := r.Get(f)
		assert.False(t, ok, f)
	}
	assert.Contains(t, res.Missing, "INJ_IPS_WEB_NO_PROXY/run 1/AVG_CPU_waf_*.txt")
}

func TestCollectMissingFilesDoNotAbort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "INJ_WAF_WEB", "run 1", "AVG_CPU_ips_300.txt"),
		"AVG busy (all cpus) = 10.00 % (avg idle=90.00%) over 100 samples\n")
	writeFile(t, filepath.Join(root, "INJ_WAF_WEB", "run 2", "AVG_CPU_ips_300.txt"),
		"AVG busy (all cpus) = 12.00 % (avg idle=88.00%) over 100 samples\n")
	writeFile(t, filepath.Join(root, "INJ_WAF_WEB", "run 2", "AVG_CPU_waf_300.txt"),
		"AVG busy (all cpus) = 55.00 % (avg idle=45.00%) over 100 samples\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "INJ_WAF_WEB", "run 3"), 0o755))

	res, err := New(Options{}).Collect(root)
	require.NoError(t, err)
	require.Equal(t, 3, res.Table.Len())

	run1 := find(t, res.Table, "INJ_WAF_WEB", "run 1")
	_, ok := run1.Get(extract.BusyWAF)
	assert.False(t, ok)

	run2 := find(t, res.Table, "INJ_WAF_WEB", "run 2")
	v, ok := run2.Get(extract.BusyWAF)
	assert.True(t, ok)
	assert.Equal(t, 55.0, v)

	// an empty run directory is still a row
	run3 := find(t, res.Table, "INJ_WAF_WEB", "run 3")
	assert.Empty(t, run3.Metrics)
	assert.False(t, run3.HasConcurrency)
}

func TestCollectSkipsUnknownScenariosByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "INJ_WEB", "run 1", "wrk_c100_run1.txt"), wrkRun1)
	writeFile(t, filepath.Join(root, "CUSTOM_TOPOLOGY", "run 1", "wrk_c100_run1.txt"), wrkRun1)
	writeFile(t, filepath.Join(root, "README.txt"), "notes")

	res, err := New(Options{}).Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"INJ_WEB"}, res.Table.Scenarios())

	res, err = New(Options{IncludeUnknown: true}).Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"INJ_WEB", "CUSTOM_TOPOLOGY"}, res.Table.Scenarios())
}

func TestCollectExcludesOutputDirectory(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "analysis_output")
	writeFile(t, filepath.Join(out, "run 1", "wrk_c100.txt"), wrkRun1)
	writeFile(t, filepath.Join(root, "INJ_WEB", "run 1", "wrk_c100_run1.txt"), wrkRun1)

	res, err := New(Options{IncludeUnknown: true, Exclude: []string{out}}).Collect(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"INJ_WEB"}, res.Table.Scenarios())
}

func TestCollectPrefersAvgCPUOverSummary(t *testing.T) {
	root := t.TempDir()
	run := filepath.Join(root, "INJ_IPS_WAF_WEB", "run 1")
	writeFile(t, filepath.Join(run, "summary_ips.txt"), "busy: 99%\nidle: 1%\nover 5 samples\n")
	writeFile(t, filepath.Join(run, "AVG_CPU_ips_1000.txt"), "AVG busy (all cpus) = 30.00 %\n")

	res, err := New(Options{}).Collect(root)
	require.NoError(t, err)
	r := res.Table.Records[0]

	assert.Equal(t, 30.0, r.Metrics[extract.BusyIPS])
	// gaps are filled from the summary file
	assert.Equal(t, 1.0, r.Metrics[extract.IdleIPS])
	assert.Equal(t, 5.0, r.Metrics[extract.SamplesIPS])
	assert.Equal(t, 1000, r.Concurrency)
}

func TestCollectConcurrencyFromDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "INJ_WEB", "run 4 c300", "wrk_direct.txt"), wrkRun1)

	res, err := New(Options{}).Collect(root)
	require.NoError(t, err)
	r := res.Table.Records[0]

	assert.True(t, r.HasConcurrency)
	assert.Equal(t, 300, r.Concurrency)
	assert.Equal(t, 4, r.RunID)
}

func TestCollectConcurrencyFromBareNumberFile(t *testing.T) {
	root := t.TempDir()
	run := filepath.Join(root, "INJ_WEB", "run 1")
	writeFile(t, filepath.Join(run, "500.txt"), "")
	writeFile(t, filepath.Join(run, "wrk_direct_run1.txt"), wrkRun1)

	res, err := New(Options{}).Collect(root)
	require.NoError(t, err)
	r := res.Table.Records[0]

	assert.True(t, r.HasConcurrency)
	assert.Equal(t, 500, r.Concurrency)
	assert.Equal(t, 2363.0, r.Metrics[extract.RequestsPerSec])
}

func TestCollectSeriesAndUnparseableFiles(t *testing.T) {
	root := t.TempDir()
	run := filepath.Join(root, "INJ_WEB", "run 1")
	writeFile(t, filepath.Join(run, "req_count_series.csv"), "ts,count\n1,100\n2,200\n3,300\n")
	writeFile(t, filepath.Join(run, "wrk_c500_run1.txt"), "unable to connect\n")

	res, err := New(Options{}).Collect(root)
	require.NoError(t, err)
	r := res.Table.Records[0]

	assert.Equal(t, 3.0, r.Metrics[extract.SeriesPoints])
	assert.Equal(t, 300.0, r.Metrics[extract.SeriesMax])
	assert.NotContains(t, r.Metrics, extract.RequestsPerSec)
	assert.Contains(t, res.Missing, "INJ_WEB/run 1/wrk_c500_run1.txt")
}

func TestCollectRootMissing(t *testing.T) {
	_, err := New(Options{}).Collect(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := map[string]extract.Kind{
		"wrk_via_waf_c500_t4_200s_run1.txt": extract.KindLoadTest,
		"AVG_CPU_ips_500.txt":               extract.KindCPUIPS,
		"summary_ips.txt":                   extract.KindCPUIPS,
		"AVG_CPU_waf_500.txt":               extract.KindCPUWAF,
		"Summary_WAF.log":                   extract.KindCPUWAF,
		"req_count_500.csv":                 extract.KindSeries,
		"timeline.csv":                      extract.KindSeries,
		"wrk_chart.png":                     extract.KindUnknown,
		"notes.md":                          extract.KindUnknown,
	}
	for name, want := range tests {
		assert.Equal(t, want, Classify(name), name)
	}
}
