// Package pricer implements Carr–Madan FFT pricing of European options from a
// characteristic function.
package pricer

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxExponent bounds the transform length at 2^20 points unless the caller
// chooses otherwise.
const DefaultMaxExponent = 20

var (
	ErrInvalidTransform = errors.New("invalid transform parameters")
	ErrInvalidMarket    = errors.New("invalid market inputs")
	ErrNonFinite        = errors.New("non-finite price")
)

// Market holds the inputs shared by every strike on a grid.
type Market struct {
	Spot     float64
	Rate     float64
	Yield    float64
	Maturity float64 // years
}

func (m Market) Validate() error {
	if !isFinite(m.Spot) || m.Spot <= 0 {
		return fmt.Errorf("spot must be > 0, got %g: %w", m.Spot, ErrInvalidMarket)
	}
	if !isFinite(m.Maturity) || m.Maturity <= 0 {
		return fmt.Errorf("maturity must be > 0, got %g: %w", m.Maturity, ErrInvalidMarket)
	}
	if !isFinite(m.Rate) || !isFinite(m.Yield) {
		return fmt.Errorf("rate and yield must be finite: %w", ErrInvalidMarket)
	}
	return nil
}

// Discount returns exp(-r*t).
func (m Market) Discount() float64 {
	return math.Exp(-m.Rate * m.Maturity)
}

// TransformParams controls the damped Fourier integration.
type TransformParams struct {
	Alpha float64 // damping factor
	Eta   float64 // frequency grid step
	N     int     // grid exponent, transform length is 2^N
	Beta  float64 // log-strike anchor; index 0 sits at -Beta
}

// NewTransformParams anchors the log-strike grid on ln(strike).
func NewTransformParams(alpha, eta float64, n int, strike float64) TransformParams {
	return TransformParams{Alpha: alpha, Eta: eta, N: n, Beta: math.Log(strike)}
}

// Size is the transform length 2^N.
func (p TransformParams) Size() int {
	return 1 << p.N
}

// Lambda is the log-strike spacing 2*pi/(N*eta).
func (p TransformParams) Lambda() float64 {
	return 2 * math.Pi / (float64(p.Size()) * p.Eta)
}

// Validate rejects parameters that make the integrand singular or the transform
// unreasonably large. maxExponent <= 0 selects DefaultMaxExponent.
func (p TransformParams) Validate(maxExponent int) error {
	if maxExponent <= 0 {
		maxExponent = DefaultMaxExponent
	}
	// alpha > 0 also rules out the singular alpha = -1.
	if !isFinite(p.Alpha) || p.Alpha <= 0 {
		return fmt.Errorf("alpha must be > 0, got %g: %w", p.Alpha, ErrInvalidTransform)
	}
	if !isFinite(p.Eta) || p.Eta <= 0 {
		return fmt.Errorf("eta must be > 0, got %g: %w", p.Eta, ErrInvalidTransform)
	}
	if p.N < 1 || p.N > maxExponent {
		return fmt.Errorf("n must be in [1, %d], got %d: %w", maxExponent, p.N, ErrInvalidTransform)
	}
	if !isFinite(p.Beta) {
		return fmt.Errorf("beta must be finite, got %g: %w", p.Beta, ErrInvalidTransform)
	}
	return nil
}

func (p TransformParams) String() string {
	return fmt.Sprintf("eta=%.2f N=2^%d alpha=%.2f", p.Eta, p.N, p.Alpha)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
