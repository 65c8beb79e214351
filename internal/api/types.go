package api

// PriceRequest is the body of POST /v1/price and POST /v1/sweep.
type PriceRequest struct {
	Model     string             `json:"model"`
	Params    map[string]float64 `json:"params"`
	Market    Market             `json:"market"`
	Strike    float64            `json:"strike"`
	Transform *Transform         `json:"transform,omitempty"`

	// Sweep sets, used by /v1/sweep only. Empty means the default set.
	Alphas    []float64 `json:"alphas,omitempty"`
	Etas      []float64 `json:"etas,omitempty"`
	Exponents []int     `json:"exponents,omitempty"`
}

type Market struct {
	Spot     float64 `json:"spot"`
	Rate     float64 `json:"rate"`
	Yield    float64 `json:"yield"`
	Maturity float64 `json:"maturity"`
}

type Transform struct {
	Alpha float64  `json:"alpha"`
	Eta   float64  `json:"eta"`
	N     int      `json:"n"`
	Beta  *float64 `json:"beta,omitempty"` // defaults to ln(strike)
}

type PriceResponse struct {
	Model      string  `json:"model"`
	Put        float64 `json:"put"`
	Call       float64 `json:"call"`
	GridStrike float64 `json:"grid_strike"`
	Index      int     `json:"index"`
}

type SweepRow struct {
	Eta   float64  `json:"eta"`
	N     int      `json:"n"`
	Alpha float64  `json:"alpha"`
	Put   *float64 `json:"put,omitempty"`
	Error string   `json:"error,omitempty"`
}

type SweepResponse struct {
	RunID string     `json:"run_id"`
	Model string     `json:"model"`
	Rows  []SweepRow `json:"rows"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
