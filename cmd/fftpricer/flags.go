package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/fftpricer/internal/config"
	"github.com/dgnsrekt/fftpricer/internal/pricer"
	"github.com/dgnsrekt/fftpricer/internal/sweep"
	"github.com/dgnsrekt/fftpricer/internal/tenor"
)

// marketFlags are the contract and transform flags shared by every model
// command. Unset flags fall back to config.
type marketFlags struct {
	spot     float64
	strike   float64
	rate     float64
	yield    float64
	maturity float64
	expiry   string

	alpha float64
	eta   float64
	n     int
}

func (f *marketFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.spot, "s0", 0, "spot price (default from config)")
	fs.Float64Var(&f.strike, "k", 0, "strike (default from config)")
	fs.Float64Var(&f.rate, "r", 0, "continuously compounded risk-free rate")
	fs.Float64Var(&f.yield, "q", 0, "continuous dividend yield")
	fs.Float64Var(&f.maturity, "t", 0, "time to maturity in years")
	fs.StringVar(&f.expiry, "expiry", "", "expiry date YYYY-MM-DD, overrides --t using NYSE trading days")

	fs.Float64Var(&f.alpha, "alpha", 0, "damping factor (omit to sweep)")
	fs.Float64Var(&f.eta, "eta", 0, "integration step (omit to sweep)")
	fs.IntVar(&f.n, "n", 0, "transform length exponent, N = 2^n (omit to sweep)")
}

// market resolves the market inputs and strike from flags over config.
func (f *marketFlags) market(cmd *cobra.Command, mc config.MarketConfig, now time.Time) (pricer.Market, float64, error) {
	fs := cmd.Flags()
	mkt := pricer.Market{
		Spot:     pick(fs.Changed("s0"), f.spot, mc.Spot),
		Rate:     pick(fs.Changed("r"), f.rate, mc.Rate),
		Yield:    pick(fs.Changed("q"), f.yield, mc.Yield),
		Maturity: pick(fs.Changed("t"), f.maturity, mc.Maturity),
	}
	strike := pick(fs.Changed("k"), f.strike, mc.Strike)

	if f.expiry != "" {
		counter := tenor.NewNYSE()
		expiry, err := counter.ParseExpiry(f.expiry)
		if err != nil {
			return mkt, 0, err
		}
		t, err := counter.YearFraction(now, expiry)
		if err != nil {
			return mkt, 0, fmt.Errorf("--expiry: %w", err)
		}
		mkt.Maturity = t
	}

	if err := mkt.Validate(); err != nil {
		return mkt, 0, err
	}
	if strike <= 0 {
		return mkt, 0, fmt.Errorf("strike must be > 0, got %g", strike)
	}
	return mkt, strike, nil
}

// overrides returns the transform parameters fixed on the command line.
func (f *marketFlags) overrides(cmd *cobra.Command) sweep.Overrides {
	fs := cmd.Flags()
	var o sweep.Overrides
	if fs.Changed("alpha") {
		o.Alpha = &f.alpha
	}
	if fs.Changed("eta") {
		o.Eta = &f.eta
	}
	if fs.Changed("n") {
		o.N = &f.n
	}
	return o
}

func pick(changed bool, flag, fallback float64) float64 {
	if changed {
		return flag
	}
	return fallback
}
