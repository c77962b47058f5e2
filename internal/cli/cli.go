package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"benchreport/internal/chart"
	"benchreport/internal/collect"
	"benchreport/internal/config"
	"benchreport/internal/report"
	"benchreport/internal/results"
	"benchreport/internal/tui/styles"
)

// maxMissingShown caps the diagnostics printed on the console; the HTML
// report always lists all of them.
const maxMissingShown = 15

// Outcome is everything a pipeline run produced.
type Outcome struct {
	Result *collect.Result
	CSV    string
	Images chart.Images
	Report string
}

// Collect scans the results root described by cfg.
func Collect(cfg config.Config, log *zap.Logger) (*collect.Result, error) {
	c := collect.New(collect.Options{
		IncludeUnknown: cfg.AllScenarios,
		Exclude:        []string{cfg.Out},
		Logger:         log,
	})
	return c.Collect(cfg.Root)
}

// Run collects the results tree, then writes the CSV, the charts and the
// HTML report into cfg.Out. Progress is printed to w.
func Run(cfg config.Config, log *zap.Logger, w io.Writer) (*Outcome, error) {
	if log == nil {
		log = zap.NewNop()
	}
	printHeader(w, cfg)

	// The root is read before the output directory, by default a child of
	// it, is created.
	res, err := Collect(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.Out, err)
	}
	if res.Table.Len() == 0 {
		log.Warn("No runs found", zap.String("root", cfg.Root))
		fmt.Fprintln(w, styles.Warn.Render("⚠ No runs found under "+cfg.Root+"; writing empty outputs."))
	}

	out := &Outcome{Result: res}

	out.CSV = filepath.Join(cfg.Out, results.CSVName)
	if err := results.SaveCSV(res.Table, out.CSV); err != nil {
		return nil, err
	}
	log.Info("Saved CSV", zap.String("file", out.CSV), zap.Int("rows", res.Table.Len()))

	renderer := chart.NewRenderer(chart.Options{
		DPI:    cfg.Chart.DPI,
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
		Logger: log,
	})
	out.Images, err = renderer.RenderAll(res.Table, cfg.Out)
	if err != nil {
		return nil, err
	}

	builder := report.NewBuilder(report.Options{
		InlineImages: cfg.InlineImages,
		Logger:       log,
	})
	out.Report, err = builder.Build(cfg.Root, res.Table, out.Images, res.Missing, cfg.Out)
	if err != nil {
		return nil, err
	}

	printSummary(w, cfg, out)
	return out, nil
}

func printHeader(w io.Writer, cfg config.Config) {
	fmt.Fprintf(w, "\n%s\n", styles.Title.Render("📊 BENCHMARK LOG ANALYSIS"))
	fmt.Fprintf(w, "%s %s\n", styles.Label.Render("Results"), styles.Text.Render(cfg.Root))
	fmt.Fprintf(w, "%s %s\n", styles.Label.Render("Output"), styles.Text.Render(cfg.Out))
	scope := "known scenarios"
	if cfg.AllScenarios {
		scope = "all directories"
	}
	fmt.Fprintf(w, "%s %s\n\n", styles.Label.Render("Scope"), styles.Text.Render(scope))
}

func printSummary(w io.Writer, cfg config.Config, out *Outcome) {
	tbl := out.Result.Table

	fmt.Fprintf(w, "%s\n", styles.Title.Render("RUNS"))
	for _, name := range tbl.Scenarios() {
		fmt.Fprintf(w, "  %s %s\n",
			styles.Active.Render(fmt.Sprintf("%-22s", name)),
			styles.Value.Render(fmt.Sprintf("%d", len(tbl.ByScenario(name)))))
	}
	fmt.Fprintf(w, "  %s %s\n\n",
		styles.Subtle.Render(fmt.Sprintf("%-22s", "total")),
		styles.Value.Render(fmt.Sprintf("%d", tbl.Len())))

	if n := len(out.Result.Missing); n > 0 {
		fmt.Fprintf(w, "%s\n", styles.Warn.Render(fmt.Sprintf("⚠ %d missing or unparseable input(s)", n)))
		for i, m := range out.Result.Missing {
			if i == maxMissingShown {
				fmt.Fprintf(w, "   %s\n", styles.Subtle.Render(fmt.Sprintf("... and %d more (see %s)", n-i, report.FileName)))
				break
			}
			fmt.Fprintf(w, "   %s\n", styles.Subtle.Render(m))
		}
		fmt.Fprintln(w)
	}

	files := append([]string{results.CSVName}, out.Images.Files()...)
	files = append(files, report.FileName)
	fmt.Fprintf(w, "%s %s\n", styles.Success.Render("✅ Outputs saved to"), styles.Text.Render(cfg.Out))
	fmt.Fprintf(w, "   %s\n", styles.Subtle.Render(strings.Join(files, ", ")))
}
