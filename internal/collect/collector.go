// Package collect walks a results tree laid out as
//
//	root/<scenario>/<run>/<files>
//
// and turns every run directory into one results.Record.
package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"benchreport/internal/extract"
	"benchreport/internal/results"
	"benchreport/internal/scenario"
)

type Options struct {
	// IncludeUnknown accepts scenario directories outside the known list.
	IncludeUnknown bool
	// Exclude lists directories that are never scanned, such as the
	// output directory when it lives under the root.
	Exclude []string
	Logger  *zap.Logger
}

// Result is the outcome of a scan.
type Result struct {
	Table *results.Table
	// Missing lists expected inputs that were absent or yielded nothing,
	// relative to the root.
	Missing []string
}

type Collector struct {
	opts    Options
	log     *zap.Logger
	exclude map[string]bool
}

func New(opts Options) *Collector {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	exclude := map[string]bool{}
	for _, p := range opts.Exclude {
		if abs, err := filepath.Abs(p); err == nil {
			exclude[abs] = true
		}
	}
	return &Collector{opts: opts, log: log, exclude: exclude}
}

// Collect scans root. Only an unreadable root is an error; everything
// below it degrades to partial records and Missing entries.
func (c *Collector) Collect(root string) (*Result, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read results root %s: %w", root, err)
	}

	res := &Result{Table: &results.Table{}}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		dir := filepath.Join(root, name)
		if c.excluded(dir) {
			c.log.Debug("Skipping excluded directory", zap.String("dir", dir))
			continue
		}
		if !scenario.IsKnown(name) && !c.opts.IncludeUnknown {
			c.log.Debug("Skipping unknown scenario directory", zap.String("dir", name))
			continue
		}
		c.collectScenario(root, name, res)
	}

	res.Table.Sort()
	c.log.Info("Collected runs",
		zap.String("root", root),
		zap.Int("runs", res.Table.Len()),
		zap.Int("missing", len(res.Missing)))
	return res, nil
}

func (c *Collector) excluded(dir string) bool {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return c.exclude[abs]
}

func (c *Collector) collectScenario(root, name string, res *Result) {
	dir := filepath.Join(root, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.log.Warn("Cannot read scenario directory", zap.String("dir", dir), zap.Error(err))
		return
	}

	ordinal := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		ordinal++
		id, ok := runID(e.Name())
		if !ok {
			id = ordinal
		}
		rec := c.collectRun(root, name, e.Name(), id, res)
		res.Table.Add(rec)
	}
}

func (c *Collector) collectRun(root, scenarioName, runName string, id int, res *Result) results.Record {
	rec := results.NewRecord(scenarioName, runName, id)
	dir := filepath.Join(root, scenarioName, runName)
	rel := func(name string) string {
		return filepath.ToSlash(filepath.Join(scenarioName, runName, name))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		c.log.Warn("Cannot read run directory", zap.String("dir", dir), zap.Error(err))
		res.Missing = append(res.Missing, rel(""))
		return rec
	}

	groups := map[extract.Kind][]string{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		// any file name may carry the concurrency, "500.txt" included
		if !rec.HasConcurrency {
			if n, ok := extract.Concurrency(e.Name()); ok {
				rec.SetConcurrency(n)
			}
		}

		kind := Classify(e.Name())
		if kind == extract.KindUnknown {
			c.log.Debug("Ignoring unrecognized file", zap.String("file", rel(e.Name())))
			continue
		}
		groups[kind] = append(groups[kind], e.Name())
	}
	if !rec.HasConcurrency {
		if n, ok := extract.ConcurrencyFromDir(runName); ok {
			rec.SetConcurrency(n)
		} else if n, ok := extract.ConcurrencyFromDir(scenarioName); ok {
			rec.SetConcurrency(n)
		}
	}

	for _, kind := range []extract.Kind{extract.KindCPUIPS, extract.KindCPUWAF} {
		files := groups[kind]
		sort.SliceStable(files, func(i, j int) bool { return cpuPriority(files[i]) < cpuPriority(files[j]) })
		for _, name := range files {
			c.extractInto(&rec, kind, dir, name, rel(name), res)
		}
	}
	for _, kind := range []extract.Kind{extract.KindLoadTest, extract.KindSeries} {
		files := groups[kind]
		if len(files) == 0 {
			continue
		}
		if len(files) > 1 {
			c.log.Debug("Several candidate files, using the first",
				zap.String("kind", kind.String()),
				zap.Strings("files", files))
		}
		c.extractInto(&rec, kind, dir, files[0], rel(files[0]), res)
	}

	if len(groups[extract.KindCPUIPS]) == 0 {
		res.Missing = append(res.Missing, rel("AVG_CPU_ips_*.txt"))
	}
	if len(groups[extract.KindCPUWAF]) == 0 {
		res.Missing = append(res.Missing, rel("AVG_CPU_waf_*.txt"))
	}
	if len(groups[extract.KindLoadTest]) == 0 {
		res.Missing = append(res.Missing, rel("*wrk*.txt"))
	}
	return rec
}

func (c *Collector) extractInto(rec *results.Record, kind extract.Kind, dir, name, relName string, res *Result) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		c.log.Warn("Cannot read file", zap.String("file", relName), zap.Error(err))
		res.Missing = append(res.Missing, relName)
		return
	}

	fields := extract.Extract(kind, string(data))
	if len(fields) == 0 {
		c.log.Debug("No fields recognized", zap.String("file", relName), zap.String("kind", kind.String()))
		res.Missing = append(res.Missing, relName)
		return
	}
	rec.Metrics.Merge(fields)
}
