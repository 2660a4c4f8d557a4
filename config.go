package chronodim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/omnarayansharma777/chronodim/internal/db"
	"github.com/omnarayansharma777/chronodim/internal/platform/envutil"
)

// Config holds everything the engine needs to reach its store and run.
type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// LogMode selects the zap profile: "prod", "dev" or "test".
	LogMode string `yaml:"log_mode"`
	// Workers caps per-actor fan-out inside one reconciliation run.
	Workers int `yaml:"workers"`
	// DefaultActive is the activity flag assumed for actors with no prior
	// cumulative record.
	DefaultActive bool `yaml:"default_active"`
}

func DefaultConfig() Config {
	return Config{
		Driver:        db.DriverPostgres,
		LogMode:       "dev",
		Workers:       4,
		DefaultActive: true,
	}
}

// ConfigFromEnv reads CHRONODIM_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Driver = envutil.String("CHRONODIM_DB_DRIVER", cfg.Driver)
	cfg.DSN = envutil.String("CHRONODIM_DB_DSN", cfg.DSN)
	cfg.LogMode = envutil.String("CHRONODIM_LOG_MODE", cfg.LogMode)
	cfg.Workers = envutil.Int("CHRONODIM_WORKERS", cfg.Workers)
	cfg.DefaultActive = envutil.Bool("CHRONODIM_DEFAULT_ACTIVE", cfg.DefaultActive)
	return cfg
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
