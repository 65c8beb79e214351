// Package report renders sweep results as a tab-separated table or as JSON
// lines.
package report

import (
	"fmt"
	"io"

	"github.com/dgnsrekt/fftpricer/internal/sweep"
)

// TableHeader is the column header line of the sweep table.
const TableHeader = "eta\tN\talpha\tput"

// WriteTable prints the model banner, the header and one row per successful
// result. Failed combinations get no row.
func WriteTable(w io.Writer, label string, results []sweep.TaskResult) error {
	if _, err := fmt.Fprintf(w, "Model = %s\n%s\n", label, TableHeader); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Success() {
			continue
		}
		if _, err := fmt.Fprintln(w, FormatRow(r)); err != nil {
			return err
		}
	}
	return nil
}

// FormatRow formats one row: eta and alpha to 2 decimals, N as 2^n, put to 4.
func FormatRow(r sweep.TaskResult) string {
	return fmt.Sprintf("%.2f\t2^%d\t%.2f\t%.4f", r.Task.Eta, r.Task.N, r.Task.Alpha, r.Quote.Put)
}
