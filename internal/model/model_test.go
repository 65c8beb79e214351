package model

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	s0 = 100.0
	r  = 0.055
	q  = 0.03
)

func defaultModels() []CharacteristicFunction {
	return []CharacteristicFunction{
		BlackScholes{Sigma: 0.3},
		Heston{Kappa: 2.0, Theta: 0.05, VolOfVol: 0.3, Rho: -0.7, V0: 0.04},
		VarianceGamma{Sigma: 0.3, Nu: 0.5, Theta: -0.4},
	}
}

func TestPhiAtZeroIsOne(t *testing.T) {
	for _, m := range defaultModels() {
		got := m.Phi(0, 1.0, s0, r, q)
		require.InDelta(t, 1.0, real(got), 1e-12, m.Name())
		require.InDelta(t, 0.0, imag(got), 1e-12, m.Name())
	}
}

func TestPhiMartingale(t *testing.T) {
	// Phi(-i) is the risk-neutral forward.
	for _, m := range defaultModels() {
		for _, mat := range []float64{0.25, 1, 5} {
			got := m.Phi(complex(0, -1), mat, s0, r, q)
			want := s0 * math.Exp((r-q)*mat)
			require.InDelta(t, want, real(got), 1e-8, "%s t=%g", m.Name(), mat)
			require.InDelta(t, 0.0, imag(got), 1e-8, "%s t=%g", m.Name(), mat)
		}
	}
}

func TestPhiBoundedOnRealAxis(t *testing.T) {
	for _, m := range defaultModels() {
		for _, u := range []float64{0.5, 1, 5, 25, 100} {
			got := cmplx.Abs(m.Phi(complex(u, 0), 1.0, s0, r, q))
			require.LessOrEqual(t, got, 1.0+1e-12, "%s u=%g", m.Name(), u)
		}
	}
}

func TestBlackScholesClosedForm(t *testing.T) {
	m := BlackScholes{Sigma: 0.2}
	u := complex(1.3, 0)
	mat := 0.5

	drift := (r-q-0.5*0.04)*mat + math.Log(s0)
	want := cmplx.Exp(complex(0, 1.3*drift) - complex(0.5*0.04*1.3*1.3*mat, 0))
	got := m.Phi(u, mat, s0, r, q)

	require.InDelta(t, real(want), real(got), 1e-14)
	require.InDelta(t, imag(want), imag(got), 1e-14)
}

func TestHestonContinuousInMaturity(t *testing.T) {
	m := Heston{Kappa: 2.0, Theta: 0.05, VolOfVol: 0.3, Rho: -0.7, V0: 0.04}
	u := complex(10, -2.5)

	prev := m.Phi(u, 0.01, s0, r, q)
	for i := 2; i <= 1000; i++ {
		mat := float64(i) * 0.01
		cur := m.Phi(u, mat, s0, r, q)
		require.False(t, cmplx.IsNaN(cur), "t=%g", mat)
		require.Less(t, cmplx.Abs(cur-prev), 0.5*cmplx.Abs(prev)+1e-9, "jump at t=%g", mat)
		prev = cur
	}
}

func TestHestonValidate(t *testing.T) {
	base := Heston{Kappa: 2.0, Theta: 0.05, VolOfVol: 0.3, Rho: -0.7, V0: 0.04}
	require.NoError(t, base.Validate())

	tests := []struct {
		name string
		mod  func(h *Heston)
	}{
		{"kappa", func(h *Heston) { h.Kappa = 0 }},
		{"theta", func(h *Heston) { h.Theta = -0.1 }},
		{"vol_of_vol", func(h *Heston) { h.VolOfVol = 0 }},
		{"rho", func(h *Heston) { h.Rho = -1.2 }},
		{"v0", func(h *Heston) { h.V0 = -0.01 }},
		{"finite", func(h *Heston) { h.Kappa = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := base
			tt.mod(&h)
			err := h.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrDomain))
		})
	}
}

func TestVarianceGammaOmegaDomain(t *testing.T) {
	// 1 - 0.5*2 - 0.5*0.09*2 < 0
	m := VarianceGamma{Sigma: 0.3, Nu: 2, Theta: 0.5}
	err := m.Validate()
	require.ErrorIs(t, err, ErrDomain)
	require.Contains(t, err.Error(), "theta=0.5")

	require.ErrorIs(t, VarianceGamma{Sigma: 0.3, Nu: 0, Theta: -0.4}.Validate(), ErrDomain)
	require.ErrorIs(t, VarianceGamma{Sigma: 0, Nu: 0.5, Theta: -0.4}.Validate(), ErrDomain)
	require.NoError(t, VarianceGamma{Sigma: 0.3, Nu: 0.5, Theta: -0.4}.Validate())
}

func TestVarianceGammaOmega(t *testing.T) {
	m := VarianceGamma{Sigma: 0.3, Nu: 0.5, Theta: -0.4}
	require.InDelta(t, math.Log(1.1775)/0.5, m.Omega(), 1e-12)
}

func TestBlackScholesValidate(t *testing.T) {
	require.NoError(t, BlackScholes{Sigma: 0.3}.Validate())
	require.ErrorIs(t, BlackScholes{Sigma: 0}.Validate(), ErrDomain)
	require.ErrorIs(t, BlackScholes{Sigma: math.Inf(1)}.Validate(), ErrDomain)
}

func TestBuild(t *testing.T) {
	cf, err := Build("heston", map[string]float64{
		"kappa": 2, "theta": 0.05, "vol_of_vol": 0.3, "rho": -0.7, "v0": 0.04,
	})
	require.NoError(t, err)
	require.Equal(t, Heston{Kappa: 2, Theta: 0.05, VolOfVol: 0.3, Rho: -0.7, V0: 0.04}, cf)

	cf, err = Build("VG", map[string]float64{"sigma": 0.3, "nu": 0.5, "theta": -0.4})
	require.NoError(t, err)
	require.Equal(t, NameVarianceGamma, cf.Name())

	_, err = Build("merton", nil)
	require.ErrorContains(t, err, "unknown model")

	_, err = Build("bs", map[string]float64{})
	require.ErrorContains(t, err, "missing parameters: sigma")

	_, err = Build("bs", map[string]float64{"sigma": 0.3, "nu": 1})
	require.ErrorContains(t, err, "unknown parameters: nu")

	_, err = Build("bs", map[string]float64{"sigma": -1})
	require.ErrorIs(t, err, ErrDomain)
}
