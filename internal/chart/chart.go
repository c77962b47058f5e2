// Package chart renders the summary table as PNG bar charts.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"benchreport/internal/extract"
	"benchreport/internal/results"
)

const (
	CPUFile        = "cpu_busy.png"
	ThroughputFile = "throughput.png"
	LatencyFile    = "latency_p50_p90.png"
	CombinedFile   = "combined_summary.png"
)

var (
	colorIPS        = color.RGBA{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF}
	colorWAF        = color.RGBA{R: 0xA2, G: 0x3B, B: 0x72, A: 0xFF}
	colorThroughput = color.RGBA{R: 0xF1, G: 0x8F, B: 0x01, A: 0xFF}
	colorP50        = color.RGBA{R: 0xC7, G: 0x3E, B: 0x1D, A: 0xFF}
	colorP90        = color.RGBA{R: 0x59, G: 0x2E, B: 0x83, A: 0xFF}
	colorBackground = color.RGBA{R: 0xF8, G: 0xF9, B: 0xFA, A: 0xFF}
	colorGrid       = color.RGBA{R: 0xDE, G: 0xE2, B: 0xE6, A: 0xFF}
)

type chartKind int

const (
	cpuChart chartKind = iota
	throughputChart
	latencyChart
)

// chartFields are the metrics drawn by each chart. A row takes part in a
// chart when it has at least one of them.
var chartFields = map[chartKind][]extract.Field{
	cpuChart:        {extract.BusyIPS, extract.BusyWAF},
	throughputChart: {extract.RequestsPerSec},
	latencyChart:    {extract.P50, extract.P90},
}

func rowsFor(t *results.Table, kind chartKind) []results.Record {
	fields := chartFields[kind]
	return t.Filter(func(rec results.Record) bool { return rec.Has(fields...) })
}

// Image describes one rendered chart.
type Image struct {
	Key     string
	Title   string
	Caption string
	File    string // base name inside the output directory
}

type Images []Image

// Files lists the base names of the rendered charts.
func (im Images) Files() []string {
	out := make([]string, len(im))
	for i, img := range im {
		out[i] = img.File
	}
	return out
}

type Options struct {
	DPI int
	// Width is the minimum figure width in inches; figures grow with the
	// number of bars.
	Width float64
	// Height of a single chart in inches.
	Height float64
	Logger *zap.Logger
}

type Renderer struct {
	opts Options
	log  *zap.Logger
}

func NewRenderer(opts Options) *Renderer {
	if opts.DPI <= 0 {
		opts.DPI = 96
	}
	if opts.Width <= 0 {
		opts.Width = 10
	}
	if opts.Height <= 0 {
		opts.Height = 6
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts, log: log}
}

// RenderAll writes the CPU, throughput, latency and combined charts to
// outDir. Each chart only shows the rows that carry its metrics.
func (r *Renderer) RenderAll(t *results.Table, outDir string) (Images, error) {
	cpuRows := rowsFor(t, cpuChart)
	thrRows := rowsFor(t, throughputChart)
	latRows := rowsFor(t, latencyChart)

	cpu, err := r.cpuPlot(cpuRows, "CPU usage per component and scenario")
	if err != nil {
		return nil, err
	}
	thr, err := r.throughputPlot(thrRows, "Throughput per run")
	if err != nil {
		return nil, err
	}
	lat, err := r.latencyPlot(latRows, "Latency percentiles per run")
	if err != nil {
		return nil, err
	}

	images := Images{
		{Key: "cpu", Title: "CPU usage (IPS & WAF)", Caption: "Average CPU busy percentage during the load test", File: CPUFile},
		{Key: "throughput", Title: "Throughput (Requests/sec)", Caption: "HTTP requests served per second, as measured by wrk", File: ThroughputFile},
		{Key: "latency", Title: "Latency percentiles", Caption: "P50 and P90 response times in milliseconds", File: LatencyFile},
		{Key: "combined", Title: "Combined overview", Caption: "CPU, throughput and latency stacked for comparison", File: CombinedFile},
	}
	singles := []struct {
		p    *plot.Plot
		rows int
	}{{cpu, len(cpuRows)}, {thr, len(thrRows)}, {lat, len(latRows)}}

	for i, s := range singles {
		path := filepath.Join(outDir, images[i].File)
		if err := r.save([][]*plot.Plot{{s.p}}, r.width(s.rows), r.height(1), path); err != nil {
			return nil, err
		}
		r.log.Debug("Saved chart", zap.String("file", path), zap.Int("bars", s.rows))
	}

	// The combined figure gets fresh plots, titled as panels.
	cpuC, err := r.cpuPlot(cpuRows, "A. CPU usage per component")
	if err != nil {
		return nil, err
	}
	thrC, err := r.throughputPlot(thrRows, "B. Throughput")
	if err != nil {
		return nil, err
	}
	latC, err := r.latencyPlot(latRows, "C. Latency percentiles")
	if err != nil {
		return nil, err
	}
	widest := max(len(cpuRows), len(thrRows), len(latRows))
	path := filepath.Join(outDir, CombinedFile)
	if err := r.save([][]*plot.Plot{{cpuC}, {thrC}, {latC}}, r.width(widest), r.height(3), path); err != nil {
		return nil, err
	}
	r.log.Debug("Saved chart", zap.String("file", path))

	return images, nil
}

func (r *Renderer) width(bars int) vg.Length {
	return vg.Length(math.Max(r.opts.Width, 0.8*float64(bars))) * vg.Inch
}

func (r *Renderer) height(panels int) vg.Length {
	if panels == 1 {
		return vg.Length(r.opts.Height) * vg.Inch
	}
	// panels of a stacked figure are a bit shorter than standalone charts
	return vg.Length(float64(panels)*r.opts.Height*0.8) * vg.Inch
}

// barWidth spreads groups of n bars over the category slots of the chart.
func (r *Renderer) barWidth(bars, perGroup int) vg.Length {
	slot := (r.width(bars) - vg.Inch) / vg.Length(max(bars, 1))
	w := slot * 0.7 / vg.Length(perGroup)
	if w < vg.Points(1) {
		w = vg.Points(1)
	}
	return w
}

func (r *Renderer) cpuPlot(rows []results.Record, title string) (*plot.Plot, error) {
	p := newPlot(title, "CPU busy (%)")
	if len(rows) == 0 {
		return p, nil
	}
	w := r.barWidth(len(rows), 2)

	ips, err := plotter.NewBarChart(values(rows, extract.BusyIPS), w)
	if err != nil {
		return nil, fmt.Errorf("failed to build cpu chart: %w", err)
	}
	ips.Color = colorIPS
	ips.LineStyle.Width = 0
	ips.Offset = -w / 2

	waf, err := plotter.NewBarChart(values(rows, extract.BusyWAF), w)
	if err != nil {
		return nil, fmt.Errorf("failed to build cpu chart: %w", err)
	}
	waf.Color = colorWAF
	waf.LineStyle.Width = 0
	waf.Offset = w / 2

	p.Add(ips, waf)
	if err := annotate(p, rows, extract.BusyIPS, "%.1f%%", ips.Offset); err != nil {
		return nil, err
	}
	if err := annotate(p, rows, extract.BusyWAF, "%.1f%%", waf.Offset); err != nil {
		return nil, err
	}
	p.Legend.Add("IPS CPU busy (%)", ips)
	p.Legend.Add("WAF CPU busy (%)", waf)
	p.NominalX(labels(rows)...)
	return p, nil
}

func (r *Renderer) throughputPlot(rows []results.Record, title string) (*plot.Plot, error) {
	p := newPlot(title, "Requests/sec")
	if len(rows) == 0 {
		return p, nil
	}

	bar, err := plotter.NewBarChart(values(rows, extract.RequestsPerSec), r.barWidth(len(rows), 1))
	if err != nil {
		return nil, fmt.Errorf("failed to build throughput chart: %w", err)
	}
	bar.Color = colorThroughput
	bar.LineStyle.Color = color.White

	p.Add(bar)
	if err := annotate(p, rows, extract.RequestsPerSec, "%.0f req/s", 0); err != nil {
		return nil, err
	}
	p.NominalX(labels(rows)...)
	return p, nil
}

func (r *Renderer) latencyPlot(rows []results.Record, title string) (*plot.Plot, error) {
	p := newPlot(title, "Latency (ms)")
	if len(rows) == 0 {
		return p, nil
	}
	w := r.barWidth(len(rows), 2)

	p50, err := plotter.NewBarChart(values(rows, extract.P50), w)
	if err != nil {
		return nil, fmt.Errorf("failed to build latency chart: %w", err)
	}
	p50.Color = colorP50
	p50.LineStyle.Width = 0
	p50.Offset = -w / 2

	p90, err := plotter.NewBarChart(values(rows, extract.P90), w)
	if err != nil {
		return nil, fmt.Errorf("failed to build latency chart: %w", err)
	}
	p90.Color = colorP90
	p90.LineStyle.Width = 0
	p90.Offset = w / 2

	p.Add(p50, p90)
	if err := annotate(p, rows, extract.P50, "%.1f ms", p50.Offset); err != nil {
		return nil, err
	}
	if err := annotate(p, rows, extract.P90, "%.1f ms", p90.Offset); err != nil {
		return nil, err
	}
	p.Legend.Add("P50 (ms)", p50)
	p.Legend.Add("P90 (ms)", p90)
	p.NominalX(labels(rows)...)
	return p, nil
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.BackgroundColor = colorBackground

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.X.Tick.Label.Font.Size = vg.Points(8)

	p.Legend.Top = true
	p.Legend.Left = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = colorGrid
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)
	return p
}

// values reads one metric per row; rows without it get an empty slot.
func values(rows []results.Record, f extract.Field) plotter.Values {
	vs := make(plotter.Values, len(rows))
	for i, rec := range rows {
		if v, ok := rec.Get(f); ok {
			vs[i] = v
		}
	}
	return vs
}

// valueLabels places the formatted value of f above each bar that has
// it. Empty slots get no label; nil means nothing to annotate.
func valueLabels(rows []results.Record, f extract.Field, format string, offset vg.Length) (*plotter.Labels, error) {
	var xyl plotter.XYLabels
	for i, rec := range rows {
		v, ok := rec.Get(f)
		if !ok {
			continue
		}
		xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(i), Y: v})
		xyl.Labels = append(xyl.Labels, fmt.Sprintf(format, v))
	}
	if len(xyl.Labels) == 0 {
		return nil, nil
	}

	l, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, fmt.Errorf("failed to build bar labels: %w", err)
	}
	l.Offset = vg.Point{X: offset, Y: vg.Points(2)}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].Font.Size = vg.Points(7)
	}
	return l, nil
}

func annotate(p *plot.Plot, rows []results.Record, f extract.Field, format string, offset vg.Length) error {
	l, err := valueLabels(rows, f, format, offset)
	if err != nil || l == nil {
		return err
	}
	p.Add(l)
	return nil
}

func labels(rows []results.Record) []string {
	out := make([]string, len(rows))
	for i, rec := range rows {
		out[i] = rec.Label()
	}
	return out
}

// save draws the plots as a column of tiles on one PNG canvas.
func (r *Renderer) save(plots [][]*plot.Plot, w, h vg.Length, path string) error {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.opts.DPI))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadY: vg.Points(12),
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	return f.Close()
}
