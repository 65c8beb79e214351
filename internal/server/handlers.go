package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dgnsrekt/fftpricer/internal/api"
	"github.com/dgnsrekt/fftpricer/internal/config"
	"github.com/dgnsrekt/fftpricer/internal/model"
	"github.com/dgnsrekt/fftpricer/internal/pricer"
	"github.com/dgnsrekt/fftpricer/internal/sweep"
)

const (
	// maxBodyBytes caps request bodies; pricing requests are small.
	maxBodyBytes = 64 << 10
	// maxSweepTasks caps the combinations a single sweep request may ask for.
	maxSweepTasks = 256
)

type Server struct {
	config  *config.Config
	sweeper *sweep.Manager
	limiter *rate.Limiter
	metrics *Metrics
	logger  *zap.Logger
}

func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		config:  cfg,
		sweeper: sweep.NewManager(cfg.Sweep.Workers, logger),
		limiter: NewLimiter(cfg.Server),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PricePut handles POST /v1/price.
func (s *Server) PricePut(w http.ResponseWriter, r *http.Request) {
	const endpoint = "price"
	start := time.Now()

	req, cf, ok := s.decode(w, r, endpoint)
	if !ok {
		return
	}
	if req.Transform == nil {
		s.reject(w, endpoint, req.Model, http.StatusBadRequest, "transform is required")
		return
	}

	tp := pricer.NewTransformParams(req.Transform.Alpha, req.Transform.Eta, req.Transform.N, req.Strike)
	if req.Transform.Beta != nil {
		tp.Beta = *req.Transform.Beta
	}

	quote, err := pricer.Price(cf, pricer.Request{
		Market:      marketFrom(req.Market),
		Strike:      req.Strike,
		Transform:   tp,
		MaxExponent: s.config.Transform.MaxExponent,
	})
	s.metrics.duration.WithLabelValues(endpoint, cf.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		s.reject(w, endpoint, cf.Name(), statusFor(err), err.Error())
		return
	}

	s.metrics.requests.WithLabelValues(endpoint, cf.Name(), "ok").Inc()
	writeJSON(w, http.StatusOK, api.PriceResponse{
		Model:      cf.Name(),
		Put:        quote.Put,
		Call:       quote.Call,
		GridStrike: quote.GridStrike,
		Index:      quote.Index,
	})
}

// Sweep handles POST /v1/sweep. Failed combinations are returned with an error
// field instead of a price.
func (s *Server) Sweep(w http.ResponseWriter, r *http.Request) {
	const endpoint = "sweep"
	start := time.Now()

	req, cf, ok := s.decode(w, r, endpoint)
	if !ok {
		return
	}

	alphas, etas, exps := s.config.Sweep.Alphas, s.config.Sweep.Etas, s.config.Sweep.Exponents
	if len(req.Alphas) > 0 {
		alphas = req.Alphas
	}
	if len(req.Etas) > 0 {
		etas = req.Etas
	}
	if len(req.Exponents) > 0 {
		exps = req.Exponents
	}

	tasks := sweep.Tasks(etas, exps, alphas)
	if len(tasks) > maxSweepTasks {
		s.reject(w, endpoint, cf.Name(), http.StatusBadRequest,
			fmt.Sprintf("sweep has %d combinations, limit is %d", len(tasks), maxSweepTasks))
		return
	}

	job := sweep.Job{
		Model:       cf,
		Market:      marketFrom(req.Market),
		Strike:      req.Strike,
		MaxExponent: s.config.Transform.MaxExponent,
	}
	batch, err := s.sweeper.Execute(r.Context(), job, tasks)
	s.metrics.duration.WithLabelValues(endpoint, cf.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		s.reject(w, endpoint, cf.Name(), http.StatusInternalServerError, err.Error())
		return
	}

	resp := api.SweepResponse{RunID: batch.RunID, Model: cf.Name(), Rows: make([]api.SweepRow, 0, len(batch.Results))}
	for _, res := range batch.Results {
		row := api.SweepRow{Eta: res.Task.Eta, N: res.Task.N, Alpha: res.Task.Alpha}
		if res.Success() {
			put := res.Quote.Put
			row.Put = &put
		} else {
			row.Error = res.Error.Error()
		}
		resp.Rows = append(resp.Rows, row)
	}

	s.metrics.requests.WithLabelValues(endpoint, cf.Name(), "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, endpoint string) (*api.PriceRequest, model.CharacteristicFunction, bool) {
	var req api.PriceRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.reject(w, endpoint, "unknown", http.StatusBadRequest, "decoding request: "+err.Error())
		return nil, nil, false
	}

	cf, err := model.Build(req.Model, req.Params)
	if err != nil {
		s.reject(w, endpoint, "unknown", http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	if req.Strike <= 0 || math.IsNaN(req.Strike) || math.IsInf(req.Strike, 0) {
		s.reject(w, endpoint, cf.Name(), http.StatusBadRequest, "strike must be > 0")
		return nil, nil, false
	}
	return &req, cf, true
}

func (s *Server) reject(w http.ResponseWriter, endpoint, modelName string, status int, msg string) {
	s.metrics.requests.WithLabelValues(endpoint, modelName, "error").Inc()
	s.logger.Warn("pricing request failed",
		zap.String("endpoint", endpoint),
		zap.String("model", modelName),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	writeError(w, status, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pricer.ErrNonFinite):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pricer.ErrInvalidTransform),
		errors.Is(err, pricer.ErrInvalidMarket),
		errors.Is(err, model.ErrDomain):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func marketFrom(m api.Market) pricer.Market {
	return pricer.Market{Spot: m.Spot, Rate: m.Rate, Yield: m.Yield, Maturity: m.Maturity}
}
