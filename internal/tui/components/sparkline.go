package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var levels = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Sparkline draws one cell per value, scaled to the largest value.
// NaN marks a gap.
type Sparkline struct {
	Data  []float64
	Width int
	Label string
	Style lipgloss.Style
}

func NewSparkline(width int, label string, style lipgloss.Style) Sparkline {
	return Sparkline{
		Width: width,
		Label: label,
		Style: style,
	}
}

// Set replaces the data, keeping the last Width values.
func (s *Sparkline) Set(vals []float64) {
	if s.Width > 0 && len(vals) > s.Width {
		vals = vals[len(vals)-s.Width:]
	}
	s.Data = append(s.Data[:0:0], vals...)
}

func (s Sparkline) Max() float64 {
	max := 0.0
	for _, v := range s.Data {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	return max
}

func (s Sparkline) View() string {
	if s.Width <= 0 || len(s.Data) == 0 {
		return ""
	}

	top := s.Max()
	var graph strings.Builder
	for _, v := range s.Data {
		switch {
		case math.IsNaN(v):
			graph.WriteString(" ")
		case top == 0:
			graph.WriteString(levels[0])
		default:
			idx := int(v / top * float64(len(levels)-1))
			idx = min(max0(idx), len(levels)-1)
			graph.WriteString(levels[idx])
		}
	}

	return s.Style.Render(s.Label) + " " + s.Style.Render(graph.String())
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
