package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgnsrekt/fftpricer/internal/sweep"
)

// Row is the JSON form of one sweep result.
type Row struct {
	RunID      string   `json:"run_id,omitempty"`
	Model      string   `json:"model"`
	Eta        float64  `json:"eta"`
	N          int      `json:"n"`
	Alpha      float64  `json:"alpha"`
	Put        *float64 `json:"put,omitempty"`
	Call       *float64 `json:"call,omitempty"`
	GridStrike *float64 `json:"grid_strike,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// NewRow converts a task result. Failed results carry the error text and no
// prices. Call and grid strike are omitted when the quote has no grid point,
// as with results read back from the service.
func NewRow(runID, model string, r sweep.TaskResult) Row {
	row := Row{
		RunID: runID,
		Model: model,
		Eta:   r.Task.Eta,
		N:     r.Task.N,
		Alpha: r.Task.Alpha,
	}
	if !r.Success() {
		row.Error = r.Error.Error()
		return row
	}
	put := r.Quote.Put
	row.Put = &put
	if r.Quote.GridStrike > 0 {
		call, strike := r.Quote.Call, r.Quote.GridStrike
		row.Call, row.GridStrike = &call, &strike
	}
	return row
}

// WriteJSONL writes one compact JSON object per line.
func WriteJSONL(w io.Writer, model string, batch *sweep.BatchResult) error {
	enc := json.NewEncoder(w)
	for _, r := range batch.Results {
		if err := enc.Encode(NewRow(batch.RunID, model, r)); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}
