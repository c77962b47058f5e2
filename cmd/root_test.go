package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRunsPipeline(t *testing.T) {
	root := t.TempDir()
	run := filepath.Join(root, "INJ_WEB", "run 1")
	require.NoError(t, os.MkdirAll(run, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(run, "AVG_CPU_ips_500.txt"), []byte("AVG busy (all cpus) = 12.5 %\n"), 0o644))

	out := filepath.Join(t.TempDir(), "report")
	cfgPath := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("chart:\n  width: 8\n"), 0o644))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{root, "--out", out, "--dpi", "40", "--config", cfgPath})
	require.NoError(t, rootCmd.Execute())

	assert.FileExists(t, filepath.Join(out, "summary_results.csv"))
	assert.FileExists(t, filepath.Join(out, "report.html"))
	assert.Contains(t, stdout.String(), "INJ_WEB")
}

func TestRootCommandRequiresRoot(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})
	assert.Error(t, rootCmd.Execute())
}
