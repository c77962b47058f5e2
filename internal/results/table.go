package results

import (
	"sort"

	"benchreport/internal/scenario"
)

// Table is the consolidated set of run records.
type Table struct {
	Records []Record
}

func (t *Table) Add(r Record) {
	t.Records = append(t.Records, r)
}

func (t *Table) Len() int {
	return len(t.Records)
}

// Sort orders records by scenario display order, then concurrency
// (unknown last), then run id, then run directory name.
func (t *Table) Sort() {
	sort.SliceStable(t.Records, func(i, j int) bool {
		a, b := t.Records[i], t.Records[j]
		if a.Scenario != b.Scenario {
			return scenario.Less(a.Scenario, b.Scenario)
		}
		if a.HasConcurrency != b.HasConcurrency {
			return a.HasConcurrency
		}
		if a.Concurrency != b.Concurrency {
			return a.Concurrency < b.Concurrency
		}
		if a.RunID != b.RunID {
			return a.RunID < b.RunID
		}
		return a.Run < b.Run
	})
}

// Scenarios lists the scenarios present in the table in display order.
func (t *Table) Scenarios() []string {
	seen := map[string]bool{}
	var names []string
	for _, r := range t.Records {
		if !seen[r.Scenario] {
			seen[r.Scenario] = true
			names = append(names, r.Scenario)
		}
	}
	scenario.Sort(names)
	return names
}

// ByScenario returns the records of one scenario, in table order.
func (t *Table) ByScenario(name string) []Record {
	var out []Record
	for _, r := range t.Records {
		if r.Scenario == name {
			out = append(out, r)
		}
	}
	return out
}

// Filter returns the records for which keep returns true.
func (t *Table) Filter(keep func(Record) bool) []Record {
	var out []Record
	for _, r := range t.Records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
