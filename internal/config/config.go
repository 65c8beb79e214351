package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Market    MarketConfig    `mapstructure:"market"`
	Transform TransformConfig `mapstructure:"transform"`
	Sweep     SweepConfig     `mapstructure:"sweep"`
	Models    ModelsConfig    `mapstructure:"models"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type MarketConfig struct {
	Spot     float64 `mapstructure:"spot"`
	Strike   float64 `mapstructure:"strike"`
	Rate     float64 `mapstructure:"rate"`
	Yield    float64 `mapstructure:"yield"`
	Maturity float64 `mapstructure:"maturity"`
}

type TransformConfig struct {
	MaxExponent int `mapstructure:"max_exponent"`
}

type SweepConfig struct {
	Workers   int       `mapstructure:"workers"`
	Alphas    []float64 `mapstructure:"alphas"`
	Etas      []float64 `mapstructure:"etas"`
	Exponents []int     `mapstructure:"exponents"`
}

type ModelsConfig struct {
	BS     BSConfig     `mapstructure:"bs"`
	Heston HestonConfig `mapstructure:"heston"`
	VG     VGConfig     `mapstructure:"vg"`
}

type BSConfig struct {
	Sigma float64 `mapstructure:"sigma"`
}

type HestonConfig struct {
	Kappa    float64 `mapstructure:"kappa"`
	Theta    float64 `mapstructure:"theta"`
	VolOfVol float64 `mapstructure:"vol_of_vol"`
	Rho      float64 `mapstructure:"rho"`
	V0       float64 `mapstructure:"v0"`
}

type VGConfig struct {
	Sigma float64 `mapstructure:"sigma"`
	Nu    float64 `mapstructure:"nu"`
	Theta float64 `mapstructure:"theta"`
}

type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("market.spot", 100.0)
	v.SetDefault("market.strike", 80.0)
	v.SetDefault("market.rate", 0.055)
	v.SetDefault("market.yield", 0.03)
	v.SetDefault("market.maturity", 1.0)
	v.SetDefault("transform.max_exponent", 20)
	v.SetDefault("sweep.workers", 4)
	v.SetDefault("sweep.alphas", []float64{1.01, 1.25, 1.50, 1.75, 2.00, 5.00})
	v.SetDefault("sweep.etas", []float64{0.10, 0.25})
	v.SetDefault("sweep.exponents", []int{6, 10})
	v.SetDefault("models.bs.sigma", 0.3)
	v.SetDefault("models.heston.kappa", 2.0)
	v.SetDefault("models.heston.theta", 0.05)
	v.SetDefault("models.heston.vol_of_vol", 0.3)
	v.SetDefault("models.heston.rho", -0.7)
	v.SetDefault("models.heston.v0", 0.04)
	v.SetDefault("models.vg.sigma", 0.3)
	v.SetDefault("models.vg.nu", 0.5)
	v.SetDefault("models.vg.theta", -0.4)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_per_second", 20.0)
	v.SetDefault("server.burst", 40)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("logging.enabled", false)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")

	// Environment variable support
	v.SetEnvPrefix("FFTPRICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
