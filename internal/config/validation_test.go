package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Market:    MarketConfig{Spot: 100, Strike: 80, Rate: 0.055, Yield: 0.03, Maturity: 1},
		Transform: TransformConfig{MaxExponent: 20},
		Sweep: SweepConfig{
			Workers:   4,
			Alphas:    []float64{1.5},
			Etas:      []float64{0.25},
			Exponents: []int{10},
		},
		Server: ServerConfig{
			Addr:          ":8080",
			RatePerSecond: 20,
			Burst:         40,
			ReadTimeout:   time.Second,
			WriteTimeout:  time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected no error for valid config, got: %v", err)
	}
}

func TestValidate_ExponentAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Sweep.Exponents = []int{10, 24}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for exponent above max")
	}
	if !strings.Contains(err.Error(), "sweep.exponents = 24") {
		t.Errorf("error should mention the exponent, got: %v", err)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("expected logging.level error, got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Market.Spot = 0
	cfg.Sweep.Alphas = []float64{1.5, -1}
	cfg.Sweep.Etas = nil
	cfg.Server.Burst = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for multiple issues")
	}

	ve, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if len(ve.Invalid) != 4 {
		t.Errorf("expected 4 problems, got %d: %v", len(ve.Invalid), err)
	}

	errStr := err.Error()
	for _, key := range []string{"market.spot", "sweep.alphas = -1", "sweep.etas", "server.burst"} {
		if !strings.Contains(errStr, key) {
			t.Errorf("error should mention %s, got: %v", key, err)
		}
	}
}
