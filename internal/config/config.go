// Package config loads the run defaults from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/baditaflorin/mesi/internal/adapters/logger"
	"github.com/baditaflorin/mesi/internal/adapters/table"
	"github.com/baditaflorin/mesi/internal/core/metric"
)

// Prefix is the prefix of every environment variable read by Load.
const Prefix = "MESI"

// DefaultEnvFile is the dotenv file read by Load when it exists.
const DefaultEnvFile = ".env"

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the defaults a run starts from. Command-line flags override them.
type Config struct {
	Algorithm   string  `envconfig:"ALGORITHM" default:"levenshtein"`
	TableFormat string  `envconfig:"TABLE_FORMAT" default:"pipe"`
	Threshold   float64 `envconfig:"THRESHOLD" default:"+Inf"`
	Workers     int     `envconfig:"WORKERS" default:"1"`
	CacheSize   int     `envconfig:"CACHE_SIZE" default:"0"` // 0 disables the content cache
	LogLevel    string  `envconfig:"LOG_LEVEL" default:"warn"`
	LogJSON     bool    `envconfig:"LOG_JSON" default:"false"`
	Progress    bool    `envconfig:"PROGRESS" default:"true"`
	MetricsFile string  `envconfig:"METRICS_FILE"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Algorithm:   metric.DefaultAlgorithm,
		TableFormat: table.DefaultFormat,
		Threshold:   math.Inf(1),
		Workers:     1,
		CacheSize:   0,
		LogLevel:    "warn",
		Progress:    true,
	}
}

// Load reads envFile when it exists, then the MESI_ environment variables.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid. The algorithm name is
// checked later by the metric registry.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache size cannot be negative, got %d", ErrInvalidConfig, c.CacheSize)
	}
	if math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: threshold must be a number", ErrInvalidConfig)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := table.ValidateFormat(c.TableFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
