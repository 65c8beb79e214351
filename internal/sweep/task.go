package sweep

import (
	"fmt"

	"github.com/dgnsrekt/fftpricer/internal/pricer"
)

// Default sweep sets used when a transform parameter is not supplied.
var (
	DefaultAlphas    = []float64{1.01, 1.25, 1.50, 1.75, 2.00, 5.00}
	DefaultEtas      = []float64{0.10, 0.25}
	DefaultExponents = []int{6, 10}
)

// Task is one transform parameter combination to price.
type Task struct {
	Alpha float64
	Eta   float64
	N     int
}

// Transform anchors the task's parameters on ln(strike).
func (t Task) Transform(strike float64) pricer.TransformParams {
	return pricer.NewTransformParams(t.Alpha, t.Eta, t.N, strike)
}

func (t Task) String() string {
	return fmt.Sprintf("eta=%.2f N=2^%d alpha=%.2f", t.Eta, t.N, t.Alpha)
}

type TaskResult struct {
	Task  Task
	Quote pricer.Quote
	Error error
}

// Success reports whether the task produced a finite price.
func (r TaskResult) Success() bool {
	return r.Error == nil
}

// Tasks enumerates every combination, nested eta -> n -> alpha.
func Tasks(etas []float64, exponents []int, alphas []float64) []Task {
	tasks := make([]Task, 0, len(etas)*len(exponents)*len(alphas))
	for _, eta := range etas {
		for _, n := range exponents {
			for _, alpha := range alphas {
				tasks = append(tasks, Task{Alpha: alpha, Eta: eta, N: n})
			}
		}
	}
	return tasks
}

// Overrides picks a single value for each transform parameter that was supplied
// and falls back to the sweep set otherwise.
type Overrides struct {
	Alpha *float64
	Eta   *float64
	N     *int
}

// Sets resolves the overrides against the given sweep sets.
func (o Overrides) Sets(alphas, etas []float64, exponents []int) ([]float64, []float64, []int) {
	if o.Alpha != nil {
		alphas = []float64{*o.Alpha}
	}
	if o.Eta != nil {
		etas = []float64{*o.Eta}
	}
	if o.N != nil {
		exponents = []int{*o.N}
	}
	return alphas, etas, exponents
}
