package results

import (
	"fmt"

	"benchreport/internal/extract"
	"benchreport/internal/scenario"
)

// Record is one row of the summary: the metrics gathered from a single
// run directory. Metrics only holds what was actually found.
type Record struct {
	Scenario string
	Run      string // run directory name
	RunID    int

	Concurrency    int
	HasConcurrency bool

	Metrics extract.Fields
}

// NewRecord returns a record with no metrics.
func NewRecord(scenarioName, run string, runID int) Record {
	return Record{
		Scenario: scenarioName,
		Run:      run,
		RunID:    runID,
		Metrics:  extract.Fields{},
	}
}

// Get returns a metric and whether it was measured.
func (r Record) Get(f extract.Field) (float64, bool) {
	v, ok := r.Metrics[f]
	return v, ok
}

// Has reports whether any of the given metrics was measured.
func (r Record) Has(fields ...extract.Field) bool {
	for _, f := range fields {
		if _, ok := r.Metrics[f]; ok {
			return true
		}
	}
	return false
}

// SetConcurrency records the concurrency level of the run.
func (r *Record) SetConcurrency(n int) {
	r.Concurrency = n
	r.HasConcurrency = true
}

// Label is the short axis label used by the charts, e.g. "IPS_NO_P\nc500 #1".
func (r Record) Label() string {
	conc := "c?"
	if r.HasConcurrency {
		conc = fmt.Sprintf("c%d", r.Concurrency)
	}
	return fmt.Sprintf("%s\n%s #%d", scenario.Short(r.Scenario), conc, r.RunID)
}
