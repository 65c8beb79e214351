package model

import (
	"math"
	"math/cmplx"
)

// Heston is the square-root stochastic variance model with correlated
// diffusion.
type Heston struct {
	Kappa    float64 // mean-reversion speed
	Theta    float64 // long-run variance
	VolOfVol float64
	Rho      float64
	V0       float64 // initial variance
}

func (m Heston) Name() string { return NameHeston }

func (m Heston) Validate() error {
	if !finite(m.Kappa, m.Theta, m.VolOfVol, m.Rho, m.V0) {
		return domainErr("heston: parameters must be finite")
	}
	switch {
	case m.Kappa <= 0:
		return domainErr("heston: kappa must be > 0, got %g", m.Kappa)
	case m.Theta <= 0:
		return domainErr("heston: theta must be > 0, got %g", m.Theta)
	case m.VolOfVol <= 0:
		return domainErr("heston: vol_of_vol must be > 0, got %g", m.VolOfVol)
	case m.Rho < -1 || m.Rho > 1:
		return domainErr("heston: rho must be in [-1, 1], got %g", m.Rho)
	case m.V0 < 0:
		return domainErr("heston: v0 must be >= 0, got %g", m.V0)
	}
	return nil
}

// Phi uses the formulation with exp(-d*t) and g = (b-d)/(b+d). With the
// principal square root for d this keeps the logarithm in C on its principal
// branch for all t, so prices stay continuous in maturity.
func (m Heston) Phi(u complex128, t, s0, r, q float64) complex128 {
	one := complex(1, 0)
	iu := complex(0, 1) * u
	sigma := complex(m.VolOfVol, 0)
	sigma2 := sigma * sigma

	b := complex(m.Kappa, 0) - complex(m.Rho, 0)*sigma*iu
	d := cmplx.Sqrt(b*b + sigma2*(iu+u*u))
	g := (b - d) / (b + d)
	e := cmplx.Exp(-d * complex(t, 0))

	c := complex(m.Kappa*m.Theta, 0) / sigma2 *
		((b-d)*complex(t, 0) - 2*cmplx.Log((one-g*e)/(one-g)))
	dTerm := (b - d) / sigma2 * ((one - e) / (one - g*e))

	return cmplx.Exp(iu*complex(math.Log(s0)+(r-q)*t, 0) + complex(m.V0, 0)*dTerm + c)
}
