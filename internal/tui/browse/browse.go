package browse

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"benchreport/internal/extract"
	"benchreport/internal/results"
	"benchreport/internal/scenario"
	"benchreport/internal/tui/components"
	"benchreport/internal/tui/styles"
)

type column struct {
	title string
	width int
	field extract.Field // empty for the identity columns
}

var columns = []column{
	{"Scenario", 22, ""},
	{"Run", 10, ""},
	{"Conc", 6, ""},
	{"IPS %", 8, extract.BusyIPS},
	{"WAF %", 8, extract.BusyWAF},
	{"Req/s", 10, extract.RequestsPerSec},
	{"P50 (ms)", 10, extract.P50},
	{"P90 (ms)", 10, extract.P90},
	{"P99 (ms)", 10, extract.P99},
	{"Sock err", 9, extract.SocketErrors},
}

// Model browses collected run records. Tab cycles a scenario filter,
// Enter toggles the detail panel of the selected run.
type Model struct {
	Table table.Model

	records   []results.Record
	visible   []results.Record
	scenarios []string
	filter    int // 0 = all, otherwise index+1 into scenarios
	detail    bool
	missing   int

	Width  int
	Height int
}

func New(t *results.Table, missing int) Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.title, Width: c.width}
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.ColorPrimary)

	s.Selected = s.Selected.
		Foreground(styles.ColorBg).
		Background(styles.ColorPrimary).
		Bold(true)

	tbl.SetStyles(s)

	m := Model{
		Table:     tbl,
		records:   t.Records,
		scenarios: t.Scenarios(),
		missing:   missing,
	}
	m.refresh()
	return m
}

// Filter is the scenario currently shown, or "" for all.
func (m Model) Filter() string {
	if m.filter == 0 {
		return ""
	}
	return m.scenarios[m.filter-1]
}

func (m *Model) refresh() {
	m.visible = nil
	want := m.Filter()
	for _, r := range m.records {
		if want == "" || r.Scenario == want {
			m.visible = append(m.visible, r)
		}
	}

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		rows[i] = row(r)
	}
	m.Table.SetRows(rows)
	m.Table.SetCursor(0)
}

func row(r results.Record) table.Row {
	out := make(table.Row, len(columns))
	out[0] = r.Scenario
	out[1] = r.Run
	out[2] = "-"
	if r.HasConcurrency {
		out[2] = fmt.Sprintf("%d", r.Concurrency)
	}
	for i, c := range columns[3:] {
		out[i+3] = "-"
		if v, ok := r.Get(c.field); ok {
			out[i+3] = results.FormatValue(c.field, v)
		}
	}
	return out
}

// Selected returns the record under the cursor.
func (m Model) Selected() (results.Record, bool) {
	idx := m.Table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return results.Record{}, false
	}
	return m.visible[idx], true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Table.SetWidth(msg.Width - 4)
		m.Table.SetHeight(max(msg.Height-12, 3)) // header, footer and detail panel

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.filter = (m.filter + 1) % (len(m.scenarios) + 1)
			m.refresh()
			return m, nil
		case "shift+tab":
			m.filter = (m.filter + len(m.scenarios)) % (len(m.scenarios) + 1)
			m.refresh()
			return m, nil
		case "enter":
			m.detail = !m.detail
			return m, nil
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	s := strings.Builder{}
	title := "📊 Benchmark Runs"
	if f := m.Filter(); f != "" {
		title += " · " + f
	}
	s.WriteString(styles.Title.Render(title))
	s.WriteString("\n\n")

	if len(m.Table.Rows()) == 0 {
		s.WriteString(styles.Subtle.Render("No runs found.\nCheck the results root or try --all-scenarios."))
	} else {
		s.WriteString(styles.Box.Render(m.Table.View()))
	}

	if spark := m.throughput(); spark != "" {
		s.WriteString("\n")
		s.WriteString(spark)
	}

	if m.detail {
		if r, ok := m.Selected(); ok {
			s.WriteString("\n")
			s.WriteString(styles.Box.Render(detail(r)))
		}
	}

	s.WriteString("\n\n")
	if m.missing > 0 {
		s.WriteString(styles.Warn.Render(fmt.Sprintf("⚠ %d missing or unparseable input(s)", m.missing)))
		s.WriteString("\n")
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.RenderKey("tab", "scenario"), "  ",
		styles.RenderKey("enter", "details"), "  ",
		styles.RenderKey("q", "quit"),
	))
	return s.String()
}

// throughput sparks requests/sec over the visible runs, one cell per run.
func (m Model) throughput() string {
	vals := make([]float64, len(m.visible))
	found := false
	for i, r := range m.visible {
		vals[i] = math.NaN()
		if v, ok := r.Get(extract.RequestsPerSec); ok {
			vals[i] = v
			found = true
		}
	}
	if !found {
		return ""
	}
	spark := components.NewSparkline(max(m.Width-20, 40), "Req/s per run", styles.Accent)
	spark.Set(vals)
	return " " + spark.View() + styles.Subtle.Render(fmt.Sprintf("  max %s", results.FormatValue(extract.RequestsPerSec, spark.Max())))
}

func detail(r results.Record) string {
	var b strings.Builder
	b.WriteString(styles.Active.Render(r.Scenario + " / " + r.Run))
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render(scenario.Describe(r.Scenario)))
	b.WriteString("\n")
	n := 0
	for _, f := range extract.MetricFields {
		v, ok := r.Get(f)
		if !ok {
			continue
		}
		if n > 0 && n%3 == 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.Subtle.Render(fmt.Sprintf("%-18s", f)))
		b.WriteString(styles.Value.Render(fmt.Sprintf("%-12s", results.FormatValue(f, v))))
		n++
	}
	if n == 0 {
		b.WriteString(styles.Subtle.Render("no metrics extracted"))
	}
	return b.String()
}
