package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/fftpricer/internal/api"
	"github.com/dgnsrekt/fftpricer/internal/model"
	"github.com/dgnsrekt/fftpricer/internal/pricer"
	"github.com/dgnsrekt/fftpricer/internal/report"
	"github.com/dgnsrekt/fftpricer/internal/sweep"
)

const (
	remoteTimeout    = 30 * time.Second
	remoteRetryDelay = time.Second
	remoteRetryCount = 3
)

// pricingJob is what a model command hands to runPricing.
type pricingJob struct {
	label  string
	name   string
	params map[string]float64
	flags  *marketFlags
	// reference, when set, is printed under the table.
	reference func(mkt pricer.Market, strike float64) float64
}

func runPricing(cmd *cobra.Command, job pricingJob) error {
	ctx := cmd.Context()

	cf, err := model.Build(job.name, job.params)
	if err != nil {
		return err
	}

	mkt, strike, err := job.flags.market(cmd, cfg.Market, time.Now())
	if err != nil {
		return err
	}

	alphas, etas, exps := job.flags.overrides(cmd).Sets(cfg.Sweep.Alphas, cfg.Sweep.Etas, cfg.Sweep.Exponents)
	tasks := sweep.Tasks(etas, exps, alphas)

	logger.Info("pricing",
		zap.String("model", cf.Name()),
		zap.Float64("spot", mkt.Spot),
		zap.Float64("strike", strike),
		zap.Float64("maturity", mkt.Maturity),
		zap.Int("combinations", len(tasks)),
		zap.Bool("remote", remoteURL != ""),
	)

	var batch *sweep.BatchResult
	if remoteURL != "" {
		batch, err = remoteSweep(cmd, cf.Name(), job.params, mkt, strike, alphas, etas, exps)
	} else {
		mgr := sweep.NewManager(cfg.Sweep.Workers, logger)
		batch, err = mgr.Execute(ctx, sweep.Job{
			Model:       cf,
			Market:      mkt,
			Strike:      strike,
			MaxExponent: cfg.Transform.MaxExponent,
		}, tasks)
	}
	if err != nil {
		return err
	}

	if err := writeResults(cmd.OutOrStdout(), job.label, cf.Name(), batch); err != nil {
		return err
	}

	if job.reference != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "analytic put = %.4f\n", job.reference(mkt, strike))
	}

	if batch.Failed > 0 {
		return fmt.Errorf("%d of %d combinations failed", batch.Failed, batch.Total)
	}
	return nil
}

func writeResults(stdout io.Writer, label, name string, batch *sweep.BatchResult) error {
	if outputPath == "" {
		return report.WriteTable(stdout, label, batch.Results)
	}

	err := report.WriteFile(outputPath, func(w io.Writer) error {
		if report.IsJSONL(outputPath) {
			return report.WriteJSONL(w, name, batch)
		}
		return report.WriteTable(w, label, batch.Results)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	logger.Info("results written", zap.String("path", outputPath), zap.Int("rows", batch.Success))
	return nil
}

func remoteSweep(cmd *cobra.Command, name string, params map[string]float64, mkt pricer.Market, strike float64,
	alphas, etas []float64, exps []int) (*sweep.BatchResult, error) {
	start := time.Now()

	client := api.NewClient(remoteURL, int(math.Max(1, cfg.Server.RatePerSecond)),
		remoteTimeout, remoteRetryDelay, remoteRetryCount, logger)

	resp, err := client.Sweep(cmd.Context(), api.PriceRequest{
		Model:  name,
		Params: params,
		Market: api.Market{
			Spot:     mkt.Spot,
			Rate:     mkt.Rate,
			Yield:    mkt.Yield,
			Maturity: mkt.Maturity,
		},
		Strike:    strike,
		Alphas:    alphas,
		Etas:      etas,
		Exponents: exps,
	})
	if err != nil {
		return nil, fmt.Errorf("remote sweep: %w", err)
	}

	batch := batchFromResponse(resp)
	batch.Duration = time.Since(start)
	for _, r := range batch.Results {
		if !r.Success() {
			logger.Error("pricing failed",
				zap.Float64("eta", r.Task.Eta),
				zap.Int("n", r.Task.N),
				zap.Float64("alpha", r.Task.Alpha),
				zap.Error(r.Error),
			)
		}
	}
	return batch, nil
}

// batchFromResponse rebuilds a sweep result from the service's rows so remote
// and local runs share one report path.
func batchFromResponse(resp *api.SweepResponse) *sweep.BatchResult {
	batch := &sweep.BatchResult{
		RunID:   resp.RunID,
		Total:   len(resp.Rows),
		Results: make([]sweep.TaskResult, 0, len(resp.Rows)),
	}
	for _, row := range resp.Rows {
		r := sweep.TaskResult{Task: sweep.Task{Alpha: row.Alpha, Eta: row.Eta, N: row.N}}
		switch {
		case row.Error != "":
			r.Error = errors.New(row.Error)
		case row.Put == nil:
			r.Error = errors.New("no price returned")
		default:
			r.Quote = pricer.Quote{Put: *row.Put}
		}

		if r.Success() {
			batch.Success++
		} else {
			batch.Failed++
			batch.Errors = append(batch.Errors, fmt.Sprintf("%s: %v", r.Task, r.Error))
		}
		batch.Results = append(batch.Results, r)
	}
	return batch
}
