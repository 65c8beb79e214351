package pricer

import (
	"fmt"
	"math"

	"github.com/dgnsrekt/fftpricer/internal/model"
)

// Request is a single put pricing request.
type Request struct {
	Market      Market
	Strike      float64
	Transform   TransformParams
	MaxExponent int
}

// Quote is the result of pricing one strike.
type Quote struct {
	Put        float64
	Call       float64 // grid call price the put was derived from
	Index      int     // grid index used
	LogStrike  float64 // grid log-strike used
	GridStrike float64 // exp(LogStrike)
}

// NearestIndex returns the index of the log-strike closest to target. The first
// index wins on equal distance. It returns -1 for an empty slice.
func NearestIndex(logStrikes []float64, target float64) int {
	best := -1
	bestErr := math.Inf(1)
	for i, k := range logStrikes {
		if err := math.Abs(k - target); err < bestErr {
			bestErr = err
			best = i
		}
	}
	return best
}

// PutFromCall applies put-call parity: P = C - s0*e^{-qt} + K*e^{-rt}.
func PutFromCall(call, strike float64, mkt Market) float64 {
	return call - mkt.Spot*math.Exp(-mkt.Yield*mkt.Maturity) + strike*math.Exp(-mkt.Rate*mkt.Maturity)
}

// CallFromPut is the inverse of PutFromCall.
func CallFromPut(put, strike float64, mkt Market) float64 {
	return put + mkt.Spot*math.Exp(-mkt.Yield*mkt.Maturity) - strike*math.Exp(-mkt.Rate*mkt.Maturity)
}

// QuoteAt reads the grid point nearest ln(strike) and converts it to a put. No
// interpolation is done; the log-strike error is at most Lambda/2.
func QuoteAt(grid *PriceGrid, mkt Market, strike float64) (Quote, error) {
	if !isFinite(strike) || strike <= 0 {
		return Quote{}, fmt.Errorf("strike must be > 0, got %g: %w", strike, ErrInvalidMarket)
	}
	idx := NearestIndex(grid.LogStrikes, math.Log(strike))
	if idx < 0 {
		return Quote{}, fmt.Errorf("empty price grid: %w", ErrInvalidTransform)
	}

	call := grid.CallPrices[idx]
	q := Quote{
		Put:        PutFromCall(call, strike, mkt),
		Call:       call,
		Index:      idx,
		LogStrike:  grid.LogStrikes[idx],
		GridStrike: math.Exp(grid.LogStrikes[idx]),
	}
	if !isFinite(q.Put) {
		return q, fmt.Errorf("put at grid strike %.6g is %g: %w", q.GridStrike, q.Put, ErrNonFinite)
	}
	return q, nil
}

// Price builds the grid for req and quotes the put at req.Strike.
func Price(cf model.CharacteristicFunction, req Request) (Quote, error) {
	if !isFinite(req.Strike) || req.Strike <= 0 {
		return Quote{}, fmt.Errorf("strike must be > 0, got %g: %w", req.Strike, ErrInvalidMarket)
	}
	grid, err := PriceCallsGrid(cf, req.Market, req.Transform, req.MaxExponent)
	if err != nil {
		return Quote{}, err
	}
	return QuoteAt(grid, req.Market, req.Strike)
}

// PricePutAtStrike prices a European put at strike via the Carr–Madan grid.
func PricePutAtStrike(cf model.CharacteristicFunction, mkt Market, tp TransformParams, strike float64) (float64, error) {
	q, err := Price(cf, Request{Market: mkt, Strike: strike, Transform: tp})
	return q.Put, err
}
