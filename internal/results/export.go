package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"benchreport/internal/extract"
)

// CSVName is the file name of the exported summary.
const CSVName = "summary_results.csv"

// Columns is the fixed CSV header.
var Columns = func() []string {
	cols := []string{"scenario", "run", "run_id", "concurrency"}
	for _, f := range extract.MetricFields {
		cols = append(cols, string(f))
	}
	return cols
}()

// FormatValue renders a metric the way it appears in the CSV: counts as
// integers, everything else in the shortest exact decimal form.
func FormatValue(f extract.Field, v float64) string {
	if f.IsCount() {
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Row renders a record as CSV cells. Absent metrics are empty cells.
func Row(r Record) []string {
	row := make([]string, 0, len(Columns))
	conc := ""
	if r.HasConcurrency {
		conc = strconv.Itoa(r.Concurrency)
	}
	row = append(row, r.Scenario, r.Run, strconv.Itoa(r.RunID), conc)
	for _, f := range extract.MetricFields {
		if v, ok := r.Metrics[f]; ok {
			row = append(row, FormatValue(f, v))
		} else {
			row = append(row, "")
		}
	}
	return row
}

// WriteCSV writes the header and one line per record.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range t.Records {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to filename.
func SaveCSV(t *Table, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return f.Close()
}
