// Package model provides the risk-neutral characteristic functions of log-price
// consumed by the Carr–Madan pricer.
package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrDomain is returned when model parameters fall outside the region where the
// characteristic function is defined.
var ErrDomain = errors.New("model parameters out of domain")

// CharacteristicFunction is the risk-neutral characteristic function of ln(S_t).
//
// Phi returns E[exp(i*u*ln(S_t))] for spot s0, rate r, yield q and maturity t.
// Implementations are immutable values and safe for concurrent use.
type CharacteristicFunction interface {
	Phi(u complex128, t, s0, r, q float64) complex128
	Name() string
	Validate() error
}

// Supported model names
const (
	NameBlackScholes  = "bs"
	NameHeston        = "heston"
	NameVarianceGamma = "vg"
)

// Names lists the supported models in display order.
func Names() []string {
	return []string{NameBlackScholes, NameHeston, NameVarianceGamma}
}

// Build constructs and validates a model from its short name and a flat
// parameter map, as received over the wire.
func Build(name string, params map[string]float64) (CharacteristicFunction, error) {
	var (
		cf      CharacteristicFunction
		allowed []string
	)

	switch strings.ToLower(name) {
	case NameBlackScholes:
		allowed = []string{"sigma"}
		cf = BlackScholes{Sigma: params["sigma"]}
	case NameHeston:
		allowed = []string{"kappa", "theta", "vol_of_vol", "rho", "v0"}
		cf = Heston{
			Kappa:    params["kappa"],
			Theta:    params["theta"],
			VolOfVol: params["vol_of_vol"],
			Rho:      params["rho"],
			V0:       params["v0"],
		}
	case NameVarianceGamma:
		allowed = []string{"sigma", "nu", "theta"}
		cf = VarianceGamma{Sigma: params["sigma"], Nu: params["nu"], Theta: params["theta"]}
	default:
		return nil, fmt.Errorf("unknown model %q (valid: %s)", name, strings.Join(Names(), ", "))
	}

	if err := checkKeys(name, params, allowed); err != nil {
		return nil, err
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

func checkKeys(name string, params map[string]float64, allowed []string) error {
	known := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		known[k] = true
	}

	var missing, unknown []string
	for _, k := range allowed {
		if _, ok := params[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range params {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)

	if len(missing) > 0 {
		return fmt.Errorf("%s: missing parameters: %s", name, strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%s: unknown parameters: %s", name, strings.Join(unknown, ", "))
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func domainErr(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrDomain)
}
