package main

import (
	"github.com/spf13/cobra"

	"github.com/dgnsrekt/fftpricer/internal/analytic"
	"github.com/dgnsrekt/fftpricer/internal/model"
	"github.com/dgnsrekt/fftpricer/internal/pricer"
)

func bsCmd() *cobra.Command {
	var (
		flags     marketFlags
		sigma     float64
		reference bool
	)

	cmd := &cobra.Command{
		Use:   "bs",
		Short: "Price a put under Black-Scholes",
		Example: `  # Sweep the default transform parameters
  fftpricer bs --sigma 0.3

  # Single combination with the closed-form price for comparison
  fftpricer bs --alpha 1.5 --eta 0.25 --n 10 --reference`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("sigma") {
				sigma = cfg.Models.BS.Sigma
			}

			job := pricingJob{
				label:  "Black-Scholes",
				name:   model.NameBlackScholes,
				params: map[string]float64{"sigma": sigma},
				flags:  &flags,
			}
			if reference {
				job.reference = func(mkt pricer.Market, strike float64) float64 {
					return analytic.Put(analytic.Inputs{
						Spot:     mkt.Spot,
						Strike:   strike,
						Rate:     mkt.Rate,
						Yield:    mkt.Yield,
						Maturity: mkt.Maturity,
						Sigma:    sigma,
					})
				}
			}
			return runPricing(cmd, job)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "volatility (default from config)")
	cmd.Flags().BoolVar(&reference, "reference", false, "also print the closed-form put")

	return cmd
}

func hestonCmd() *cobra.Command {
	var (
		flags                           marketFlags
		kappa, theta, volOfVol, rho, v0 float64
	)

	cmd := &cobra.Command{
		Use:   "heston",
		Short: "Price a put under the Heston stochastic volatility model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			hc := cfg.Models.Heston
			params := map[string]float64{
				"kappa":      pick(fs.Changed("kappa"), kappa, hc.Kappa),
				"theta":      pick(fs.Changed("theta"), theta, hc.Theta),
				"vol_of_vol": pick(fs.Changed("vol-of-vol"), volOfVol, hc.VolOfVol),
				"rho":        pick(fs.Changed("rho"), rho, hc.Rho),
				"v0":         pick(fs.Changed("v0"), v0, hc.V0),
			}
			return runPricing(cmd, pricingJob{
				label:  "Heston",
				name:   model.NameHeston,
				params: params,
				flags:  &flags,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&kappa, "kappa", 0, "mean reversion speed")
	cmd.Flags().Float64Var(&theta, "theta", 0, "long-run variance")
	cmd.Flags().Float64Var(&volOfVol, "vol-of-vol", 0, "volatility of variance")
	cmd.Flags().Float64Var(&rho, "rho", 0, "spot/variance correlation")
	cmd.Flags().Float64Var(&v0, "v0", 0, "initial variance")

	return cmd
}

func vgCmd() *cobra.Command {
	var (
		flags            marketFlags
		sigma, nu, theta float64
	)

	cmd := &cobra.Command{
		Use:   "vg",
		Short: "Price a put under the Variance Gamma model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			vc := cfg.Models.VG
			params := map[string]float64{
				"sigma": pick(fs.Changed("sigma"), sigma, vc.Sigma),
				"nu":    pick(fs.Changed("nu"), nu, vc.Nu),
				"theta": pick(fs.Changed("theta"), theta, vc.Theta),
			}
			return runPricing(cmd, pricingJob{
				label:  "Variance Gamma",
				name:   model.NameVarianceGamma,
				params: params,
				flags:  &flags,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "volatility of the subordinated Brownian motion")
	cmd.Flags().Float64Var(&nu, "nu", 0, "variance rate of the gamma time change")
	cmd.Flags().Float64Var(&theta, "theta", 0, "drift of the subordinated Brownian motion (skew)")

	return cmd
}
