package pricer

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/dgnsrekt/fftpricer/internal/model"
)

// PriceGrid holds call prices on a regular log-strike grid.
// CallPrices[m] is the price at LogStrikes[m] = -Beta + m*Lambda.
type PriceGrid struct {
	LogStrikes []float64
	CallPrices []float64
	Lambda     float64
}

// Len returns the number of grid points.
func (g *PriceGrid) Len() int {
	return len(g.LogStrikes)
}

// PriceCallsGrid evaluates the damped call transform at 2^N frequencies and
// recovers discounted call prices at all grid log-strikes with one forward FFT.
//
// Non-finite characteristic function values are not trapped here; they show up
// as non-finite grid prices.
func PriceCallsGrid(cf model.CharacteristicFunction, mkt Market, tp TransformParams, maxExponent int) (*PriceGrid, error) {
	if err := mkt.Validate(); err != nil {
		return nil, err
	}
	if err := tp.Validate(maxExponent); err != nil {
		return nil, err
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", cf.Name(), err)
	}

	n := tp.Size()
	alpha, eta, beta := tp.Alpha, tp.Eta, tp.Beta
	discount := complex(mkt.Discount(), 0)

	x := make([]complex128, n)
	for j := range x {
		u := float64(j) * eta
		phi := cf.Phi(complex(u, -(alpha+1)), mkt.Maturity, mkt.Spot, mkt.Rate, mkt.Yield)
		den := complex(alpha*alpha+alpha-u*u, (2*alpha+1)*u)
		psi := discount * phi / den

		x[j] = psi * cmplx.Exp(complex(0, beta*u)) * complex(eta*simpsonWeight(j), 0)
	}

	y := fourier.NewCmplxFFT(n).Coefficients(nil, x)

	lambda := tp.Lambda()
	grid := &PriceGrid{
		LogStrikes: make([]float64, n),
		CallPrices: make([]float64, n),
		Lambda:     lambda,
	}
	for m := range y {
		k := -beta + float64(m)*lambda
		grid.LogStrikes[m] = k
		grid.CallPrices[m] = math.Exp(-alpha*k) * real(y[m]) / math.Pi
	}

	return grid, nil
}

// simpsonWeight is the Simpson's rule weight (1, 4, 2, 4, ..., 2, 4)/3. The
// final point keeps its alternating weight; the truncated tail is negligible for
// well-damped integrands.
func simpsonWeight(j int) float64 {
	switch {
	case j == 0:
		return 1.0 / 3
	case j%2 == 1:
		return 4.0 / 3
	default:
		return 2.0 / 3
	}
}
