package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Graph struct {
		K uint32 `yaml:"k"`
	} `yaml:"graph"`
	Storage struct {
		DB string `yaml:"db"`
	} `yaml:"storage"`
	Log struct {
		Level  string `yaml:"level"`  // debug, info, warn, error
		Format string `yaml:"format"` // text or json
	} `yaml:"log"`
	Scaffold struct {
		MinGap int `yaml:"min_gap"`
	} `yaml:"scaffold"`
	Genes struct {
		MinEdgeLen int `yaml:"min_edge_len"`
	} `yaml:"genes"`
	Neighborhood struct {
		MinSize    int `yaml:"min_size"`
		MaxSize    int `yaml:"max_size"`
		Multiplier int `yaml:"multiplier"` // 2 for nucleotide, 6 for amino-acid overhangs
	} `yaml:"neighborhood"`
	Output struct {
		LineWidth int `yaml:"line_width"`
		Workers   int `yaml:"workers"`
	} `yaml:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Graph.K = 55
	cfg.Storage.DB = "asmgraph.db"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Genes.MinEdgeLen = 300
	cfg.Neighborhood.MinSize = 2
	cfg.Neighborhood.MaxSize = 1000
	cfg.Neighborhood.Multiplier = 2
	cfg.Output.LineWidth = 60
	cfg.Output.Workers = 4
	return &cfg
}

// LoadConfig layers path over the defaults, then applies ASMGRAPH_*
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if k := os.Getenv("ASMGRAPH_K"); k != "" {
		v, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: ASMGRAPH_K=%q", ErrInvalidConfig, k)
		}
		cfg.Graph.K = uint32(v)
	}
	if db := os.Getenv("ASMGRAPH_DB"); db != "" {
		cfg.Storage.DB = db
	}
	if level := os.Getenv("ASMGRAPH_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("ASMGRAPH_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Graph.K == 0:
		return fmt.Errorf("%w: graph.k must be positive", ErrInvalidConfig)
	case c.Genes.MinEdgeLen < 0:
		return fmt.Errorf("%w: genes.min_edge_len must not be negative", ErrInvalidConfig)
	case c.Neighborhood.MinSize > c.Neighborhood.MaxSize:
		return fmt.Errorf("%w: neighborhood.min_size exceeds max_size", ErrInvalidConfig)
	case c.Neighborhood.Multiplier <= 0:
		return fmt.Errorf("%w: neighborhood.multiplier must be positive", ErrInvalidConfig)
	case c.Output.LineWidth < 0:
		return fmt.Errorf("%w: output.line_width must not be negative", ErrInvalidConfig)
	case c.Output.Workers < 0:
		return fmt.Errorf("%w: output.workers must not be negative", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}
