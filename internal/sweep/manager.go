// Package sweep prices a model across transform parameter combinations on a
// bounded worker pool.
package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dgnsrekt/fftpricer/internal/model"
	"github.com/dgnsrekt/fftpricer/internal/pricer"
)

// Job is the fixed part of a sweep: one model, one market and one strike.
type Job struct {
	Model       model.CharacteristicFunction
	Market      pricer.Market
	Strike      float64
	MaxExponent int
}

type Manager struct {
	workers int
	logger  *zap.Logger
}

type indexedResult struct {
	pos    int
	result TaskResult
}

type BatchResult struct {
	RunID    string
	Total    int
	Success  int
	Failed   int
	Results  []TaskResult // in task order
	Errors   []string
	Duration time.Duration
}

func NewManager(workers int, logger *zap.Logger) *Manager {
	if workers < 1 {
		workers = 1
	}
	return &Manager{
		workers: workers,
		logger:  logger,
	}
}

// Execute prices every task. Per-task failures are recorded in the result; the
// returned error is reserved for an invalid job.
func (m *Manager) Execute(ctx context.Context, job Job, tasks []Task) (*BatchResult, error) {
	if job.Model == nil {
		return nil, fmt.Errorf("sweep job has no model")
	}

	start := time.Now()
	result := &BatchResult{
		RunID:   uuid.NewString(),
		Total:   len(tasks),
		Results: make([]TaskResult, len(tasks)),
	}

	log := m.logger.With(
		zap.String("run_id", result.RunID),
		zap.String("model", job.Model.Name()),
	)

	if len(tasks) == 0 {
		return result, nil
	}

	jobs := make(chan int, len(tasks))
	results := make(chan indexedResult, len(tasks))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < m.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.worker(ctx, job, tasks, jobs, results)
		}()
	}

	// Send jobs
	go func() {
		defer close(jobs)
		for i := range tasks {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	// Wait for workers and close results
	go func() {
		wg.Wait()
		close(results)
	}()

	done := make([]bool, len(tasks))
	for r := range results {
		result.Results[r.pos] = r.result
		done[r.pos] = true
	}

	// Anything not picked up before cancellation is reported as failed.
	for i, ok := range done {
		if !ok {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("task not run")
			}
			result.Results[i] = TaskResult{Task: tasks[i], Error: err}
		}
	}

	for _, r := range result.Results {
		if r.Success() {
			result.Success++
			continue
		}
		result.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", r.Task, r.Error))
		log.Error("pricing failed",
			zap.Float64("eta", r.Task.Eta),
			zap.Int("n", r.Task.N),
			zap.Float64("alpha", r.Task.Alpha),
			zap.Error(r.Error),
		)
	}

	result.Duration = time.Since(start)
	log.Info("sweep complete",
		zap.Int("total", result.Total),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

func (m *Manager) worker(ctx context.Context, job Job, tasks []Task, jobs <-chan int, results chan<- indexedResult) {
	for i := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- indexedResult{pos: i, result: m.processTask(job, tasks[i])}
	}
}

func (m *Manager) processTask(job Job, task Task) TaskResult {
	result := TaskResult{Task: task}

	quote, err := pricer.Price(job.Model, pricer.Request{
		Market:      job.Market,
		Strike:      job.Strike,
		Transform:   task.Transform(job.Strike),
		MaxExponent: job.MaxExponent,
	})
	if err != nil {
		result.Error = err
		return result
	}

	result.Quote = quote
	m.logger.Debug("priced", zap.String("task", task.String()), zap.Float64("put", quote.Put))
	return result
}
