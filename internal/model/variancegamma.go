package model

import (
	"math"
	"math/cmplx"
)

// VarianceGamma is Brownian motion with drift Theta and volatility Sigma
// evaluated on a gamma clock with variance rate Nu.
type VarianceGamma struct {
	Sigma float64
	Nu    float64
	Theta float64
}

func (m VarianceGamma) Name() string { return NameVarianceGamma }

// omegaArg is the argument of the logarithm in the convexity correction. It must
// be strictly positive for the forward to exist.
func (m VarianceGamma) omegaArg() float64 {
	return 1 - m.Theta*m.Nu - 0.5*m.Sigma*m.Sigma*m.Nu
}

func (m VarianceGamma) Validate() error {
	if !finite(m.Sigma, m.Nu, m.Theta) {
		return domainErr("variance gamma: parameters must be finite")
	}
	if m.Sigma <= 0 {
		return domainErr("variance gamma: sigma must be > 0, got %g", m.Sigma)
	}
	if m.Nu <= 0 {
		return domainErr("variance gamma: nu must be > 0, got %g", m.Nu)
	}
	if a := m.omegaArg(); a <= 0 {
		return domainErr("variance gamma: 1 - theta*nu - sigma^2*nu/2 = %g must be > 0 (theta=%g, nu=%g, sigma=%g)",
			a, m.Theta, m.Nu, m.Sigma)
	}
	return nil
}

// Omega is the convexity correction that makes the discounted price a
// martingale: Phi(-i) == s0*exp((r-q)*t).
func (m VarianceGamma) Omega() float64 {
	return math.Log(m.omegaArg()) / m.Nu
}

func (m VarianceGamma) Phi(u complex128, t, s0, r, q float64) complex128 {
	sigma2 := m.Sigma * m.Sigma
	drift := math.Log(s0) + (r-q+m.Omega())*t
	i := complex(0, 1)

	base := 1 - i*complex(m.Theta*m.Nu, 0)*u + complex(0.5*sigma2*m.Nu, 0)*u*u
	return cmplx.Exp(i*u*complex(drift, 0)) * cmplx.Pow(base, complex(-t/m.Nu, 0))
}
