// Package analytic has closed-form Black–Scholes–Merton prices used as a
// reference for the transform pricer.
package analytic

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Inputs for a European option on an asset paying a continuous yield.
type Inputs struct {
	Spot     float64
	Strike   float64
	Rate     float64
	Yield    float64
	Maturity float64
	Sigma    float64
}

func (in Inputs) d1d2() (float64, float64) {
	sqrtT := math.Sqrt(in.Maturity)
	d1 := (math.Log(in.Spot/in.Strike) + (in.Rate-in.Yield+0.5*in.Sigma*in.Sigma)*in.Maturity) / (in.Sigma * sqrtT)
	return d1, d1 - in.Sigma*sqrtT
}

// Call returns the Black–Scholes–Merton call price.
func Call(in Inputs) float64 {
	if in.Maturity <= 0 || in.Sigma <= 0 {
		return math.Max(in.Spot*math.Exp(-in.Yield*in.Maturity)-in.Strike*math.Exp(-in.Rate*in.Maturity), 0)
	}
	d1, d2 := in.d1d2()
	n := distuv.UnitNormal
	return in.Spot*math.Exp(-in.Yield*in.Maturity)*n.CDF(d1) - in.Strike*math.Exp(-in.Rate*in.Maturity)*n.CDF(d2)
}

// Put returns the Black–Scholes–Merton put price.
func Put(in Inputs) float64 {
	if in.Maturity <= 0 || in.Sigma <= 0 {
		return math.Max(in.Strike*math.Exp(-in.Rate*in.Maturity)-in.Spot*math.Exp(-in.Yield*in.Maturity), 0)
	}
	d1, d2 := in.d1d2()
	n := distuv.UnitNormal
	return in.Strike*math.Exp(-in.Rate*in.Maturity)*n.CDF(-d2) - in.Spot*math.Exp(-in.Yield*in.Maturity)*n.CDF(-d1)
}
