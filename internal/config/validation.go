package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// InvalidValue is one rejected configuration key.
type InvalidValue struct {
	Key    string
	Value  any
	Reason string
}

// ValidationErrors collects all validation errors
type ValidationErrors struct {
	Invalid []InvalidValue
}

// HasErrors returns true if any validation errors exist
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Invalid) > 0
}

func (e *ValidationErrors) add(key string, value any, reason string) {
	e.Invalid = append(e.Invalid, InvalidValue{Key: key, Value: value, Reason: reason})
}

// Error formats all validation errors into a clear message
func (e *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")
	for _, iv := range e.Invalid {
		sb.WriteString(fmt.Sprintf("  - %s = %v (%s)\n", iv.Key, iv.Value, iv.Reason))
	}
	return sb.String()
}

// Validate checks ranges that do not depend on a particular model. Model
// parameter domains are checked by the models themselves.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if c.Market.Spot <= 0 {
		errs.add("market.spot", c.Market.Spot, "must be > 0")
	}
	if c.Market.Strike <= 0 {
		errs.add("market.strike", c.Market.Strike, "must be > 0")
	}
	if c.Market.Maturity <= 0 {
		errs.add("market.maturity", c.Market.Maturity, "must be > 0")
	}

	if c.Transform.MaxExponent < 1 || c.Transform.MaxExponent > 30 {
		errs.add("transform.max_exponent", c.Transform.MaxExponent, "must be in [1, 30]")
	}

	validateSweep(errs, c.Sweep, c.Transform.MaxExponent)

	if c.Server.Addr == "" {
		errs.add("server.addr", c.Server.Addr, "is required")
	}
	if c.Server.RatePerSecond <= 0 {
		errs.add("server.rate_per_second", c.Server.RatePerSecond, "must be > 0")
	}
	if c.Server.Burst < 1 {
		errs.add("server.burst", c.Server.Burst, "must be >= 1")
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		errs.add("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateSweep(errs *ValidationErrors, s SweepConfig, maxExponent int) {
	if s.Workers < 1 {
		errs.add("sweep.workers", s.Workers, "must be >= 1")
	}
	if len(s.Alphas) == 0 {
		errs.add("sweep.alphas", s.Alphas, "must not be empty")
	}
	for _, a := range s.Alphas {
		if a <= 0 {
			errs.add("sweep.alphas", a, "must be > 0")
		}
	}
	if len(s.Etas) == 0 {
		errs.add("sweep.etas", s.Etas, "must not be empty")
	}
	for _, e := range s.Etas {
		if e <= 0 {
			errs.add("sweep.etas", e, "must be > 0")
		}
	}
	if len(s.Exponents) == 0 {
		errs.add("sweep.exponents", s.Exponents, "must not be empty")
	}
	for _, n := range s.Exponents {
		if n < 1 || n > maxExponent {
			errs.add("sweep.exponents", n, fmt.Sprintf("must be in [1, %d]", maxExponent))
		}
	}
}
