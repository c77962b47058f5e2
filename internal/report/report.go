// Package report renders the collected results, charts and diagnostics as
// a single HTML page.
package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"benchreport/internal/chart"
	"benchreport/internal/results"
	"benchreport/internal/scenario"
)

// FileName is the name of the generated report.
const FileName = "report.html"

type Options struct {
	// InlineImages embeds the charts as data URIs instead of linking the
	// PNG files next to the report.
	InlineImages bool
	Logger       *zap.Logger
	// Now overrides the generation time, for tests.
	Now func() time.Time
}

type Builder struct {
	opts Options
	log  *zap.Logger
}

func NewBuilder(opts Options) *Builder {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{opts: opts, log: log}
}

type legendEntry struct {
	Name        string
	Description string
	Known       bool
}

type section struct {
	Name        string
	Description string
	Rows        [][]string
}

type figure struct {
	Title   string
	Caption string
	File    string
	Src     template.URL
}

type page struct {
	ID        string
	Generated string
	Root      string
	Runs      int
	Columns   []string
	Legend    []legendEntry
	Sections  []section
	Figures   []figure
	Missing   []string
}

// Build writes report.html into outDir and returns its path. Scenarios
// without rows still get a section.
func (b *Builder) Build(root string, t *results.Table, images chart.Images, missing []string, outDir string) (string, error) {
	p := page{
		ID:        uuid.NewString(),
		Generated: b.opts.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Root:      root,
		Runs:      t.Len(),
		Columns:   results.Columns,
		Missing:   uniqueSorted(missing),
	}

	for _, name := range sectionNames(t) {
		p.Legend = append(p.Legend, legendEntry{
			Name:        name,
			Description: scenario.Describe(name),
			Known:       scenario.IsKnown(name),
		})
		s := section{Name: name, Description: scenario.Describe(name)}
		for _, r := range t.ByScenario(name) {
			s.Rows = append(s.Rows, results.Row(r))
		}
		p.Sections = append(p.Sections, s)
	}

	for _, img := range images {
		f := figure{Title: img.Title, Caption: img.Caption, File: img.File, Src: template.URL(img.File)}
		if b.opts.InlineImages {
			src, err := dataURI(filepath.Join(outDir, img.File))
			if err != nil {
				return "", err
			}
			f.Src = src
		}
		p.Figures = append(p.Figures, f)
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	path := filepath.Join(outDir, FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	b.log.Debug("Saved report",
		zap.String("file", path),
		zap.String("id", p.ID),
		zap.Bool("inline_images", b.opts.InlineImages))
	return path, nil
}

// sectionNames is every known scenario plus the unknown ones present.
func sectionNames(t *results.Table) []string {
	names := make([]string, 0, len(scenario.Known))
	for _, s := range scenario.Known {
		names = append(names, s.Name)
	}
	for _, name := range t.Scenarios() {
		if !scenario.IsKnown(name) {
			names = append(names, name)
		}
	}
	scenario.Sort(names)
	return names
}

func dataURI(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to inline image %s: %w", path, err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data)), nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

var pageTmpl = template.Must(template.New("report").Parse(pageHTML))

var pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Benchmark report</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; background: #F8F9FA; color: #212529; margin: 0; }
header { background: #2E86AB; color: #fff; padding: 1.5em 2em; }
header small { opacity: 0.8; }
main { padding: 1em 2em; }
h2 { border-bottom: 2px solid #E9ECEF; padding-bottom: 0.3em; }
table { border-collapse: collapse; font-size: 0.85em; margin-bottom: 1em; background: #fff; }
th, td { border: 1px solid #E9ECEF; padding: 0.3em 0.6em; text-align: right; }
th { background: #E9ECEF; }
td:first-child, td:nth-child(2) { text-align: left; }
dl.legend dt { font-weight: bold; margin-top: 0.6em; }
dl.legend dt.unknown { color: #A23B72; }
.empty { color: #6C757D; font-style: italic; }
figure { margin: 1em 0 2em; }
figure img { max-width: 100%; border: 1px solid #E9ECEF; background: #fff; }
figcaption { color: #6C757D; }
.missing li { font-family: monospace; }
</style>
</head>
<body>
<header>
  <h1>Benchmark report</h1>
  <small>Generated {{.Generated}} &middot; {{.Runs}} run(s) from <code>{{.Root}}</code> &middot; report {{.ID}}</small>
</header>
<main>

<h2>Scenarios</h2>
<dl class="legend">
{{- range .Legend}}
  <dt{{if not .Known}} class="unknown"{{end}}>{{.Name}}</dt>
  <dd>{{.Description}}</dd>
{{- end}}
</dl>

<h2>Charts</h2>
{{- range .Figures}}
<figure>
  <h3>{{.Title}}</h3>
  <img src="{{.Src}}" alt="{{.Title}}">
  <figcaption>{{.Caption}} (<code>{{.File}}</code>)</figcaption>
</figure>
{{- end}}

<h2>Results per scenario</h2>
{{- $cols := .Columns}}
{{- range .Sections}}
<section>
  <h3>{{.Name}}</h3>
  <p>{{.Description}}</p>
  {{- if .Rows}}
  <table>
    <tr>{{range $cols}}<th>{{.}}</th>{{end}}</tr>
    {{- range .Rows}}
    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{- end}}
  </table>
  {{- else}}
  <p class="empty">No data for this scenario.</p>
  {{- end}}
</section>
{{- end}}

<h2>Missing or unparseable inputs</h2>
{{- if .Missing}}
<ul class="missing">
{{- range .Missing}}
  <li>{{.}}</li>
{{- end}}
</ul>
{{- else}}
<p class="empty">All expected inputs were found.</p>
{{- end}}

</main>
</body>
</html>
`
