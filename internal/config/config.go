package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "codescope.yaml"

type Config struct {
	Output struct {
		Format string `yaml:"format" validate:"required,oneof=cbor json toml yaml yml msgpack"`
		Pretty bool   `yaml:"pretty"`
		Dir    string `yaml:"dir"`
	} `yaml:"output"`
	Scan struct {
		Language string   `yaml:"language"`
		Include  []string `yaml:"include" validate:"dive,required"`
		Exclude  []string `yaml:"exclude" validate:"dive,required"`
		Jobs     int      `yaml:"jobs" validate:"min=0,max=256"`
	} `yaml:"scan"`
	Cache struct {
		DB string `yaml:"db"`
	} `yaml:"cache"`
}

var validate = validator.New()

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Output.Format = "json"
	return &cfg
}

// LoadConfig reads path on top of the defaults, then applies .env and
// CODESCOPE_* environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("CODESCOPE_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("CODESCOPE_OUTPUT"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("CODESCOPE_DB"); v != "" {
		cfg.Cache.DB = v
	}
	if v := os.Getenv("CODESCOPE_JOBS"); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CODESCOPE_JOBS %q: %w", v, err)
		}
		cfg.Scan.Jobs = jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
