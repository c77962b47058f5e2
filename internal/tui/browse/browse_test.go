package browse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchreport/internal/extract"
	"benchreport/internal/results"
)

func sampleTable() *results.Table {
	t := &results.Table{}

	a := results.NewRecord("INJ_WEB", "run 1", 1)
	a.SetConcurrency(500)
	a.Metrics[extract.RequestsPerSec] = 2363
	a.Metrics[extract.SocketErrors] = 46
	t.Add(a)

	t.Add(results.NewRecord("INJ_WEB", "run 2", 2))
	t.Add(results.NewRecord("NO INJECTION", "run 1", 1))
	t.Sort()
	return t
}

func press(t *testing.T, m tea.Model, key tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestRows(t *testing.T) {
	m := New(sampleTable(), 0)
	rows := m.Table.Rows()
	require.Len(t, rows, 3)

	assert.Equal(t, "NO INJECTION", rows[0][0])
	assert.Equal(t, []string{"INJ_WEB", "run 1", "500", "-", "-", "2363", "-", "-", "-", "46"}, []string(rows[1]))
	assert.Equal(t, "-", rows[2][2])
}

func TestTabCyclesScenarioFilter(t *testing.T) {
	m := New(sampleTable(), 0)
	tab := tea.KeyMsg{Type: tea.KeyTab}

	m = press(t, m, tab)
	assert.Equal(t, "NO INJECTION", m.Filter())
	assert.Len(t, m.Table.Rows(), 1)

	m = press(t, m, tab)
	assert.Equal(t, "INJ_WEB", m.Filter())
	assert.Len(t, m.Table.Rows(), 2)

	m = press(t, m, tab)
	assert.Equal(t, "", m.Filter())
	assert.Len(t, m.Table.Rows(), 3)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "INJ_WEB", m.Filter())
}

func TestEnterShowsDetail(t *testing.T) {
	m := New(sampleTable(), 2)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	r, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "run 1", r.Run)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "requests_per_sec")
	assert.Contains(t, view, "2 missing")
}

func TestQuit(t *testing.T) {
	m := New(&results.Table{}, 0)
	assert.Contains(t, m.View(), "No runs found")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestThroughputSparkline(t *testing.T) {
	m := New(sampleTable(), 0)
	assert.Contains(t, m.View(), "Req/s per run")
	assert.Contains(t, m.View(), "max 2363")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}) // NO INJECTION only
	assert.NotContains(t, m.View(), "Req/s per run")
}
