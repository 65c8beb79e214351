package model

import (
	"math"
	"math/cmplx"
)

// BlackScholes is geometric Brownian motion with constant volatility.
type BlackScholes struct {
	Sigma float64
}

func (m BlackScholes) Name() string { return NameBlackScholes }

func (m BlackScholes) Validate() error {
	if !finite(m.Sigma) || m.Sigma <= 0 {
		return domainErr("black-scholes: sigma must be > 0, got %g", m.Sigma)
	}
	return nil
}

func (m BlackScholes) Phi(u complex128, t, s0, r, q float64) complex128 {
	sigma2 := m.Sigma * m.Sigma
	drift := (r-q-0.5*sigma2)*t + math.Log(s0)
	iu := complex(0, 1) * u
	return cmplx.Exp(iu*complex(drift, 0) - complex(0.5*sigma2*t, 0)*u*u)
}
