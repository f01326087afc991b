package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied to correlation blocks that omit a parameter.
const (
	DefaultBlocks          = 1
	DefaultPoints          = 100
	DefaultAveraging       = 2
	DefaultUpdateFrequency = 1
)

// Config is the top-level mtcorr run configuration.
type Config struct {
	Input       string              `yaml:"input"`
	Output      string              `yaml:"output"`
	LogLevel    string              `yaml:"log_level"`
	MetricsAddr string              `yaml:"metrics_addr"`
	Correlation []CorrelationConfig `yaml:"correlations"`
}

// ObservableConfig names the input channels one correland reads.
type ObservableConfig struct {
	Columns []string `yaml:"columns"`
}

// CorrelationConfig describes one requested correlation <ab>.
type CorrelationConfig struct {
	Name            string           `yaml:"name"`
	A               ObservableConfig `yaml:"a"`
	B               ObservableConfig `yaml:"b"`
	Blocks          int              `yaml:"blocks"`
	Points          int              `yaml:"points"`
	Averaging       int              `yaml:"averaging"`
	UpdateFrequency int              `yaml:"update_frequency"`
}

// Load reads and validates a run configuration from file, filling in
// defaults for omitted correlation parameters.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i := range cfg.Correlation {
		cor := &cfg.Correlation[i]
		if cor.Blocks == 0 {
			cor.Blocks = DefaultBlocks
		}
		if cor.Points == 0 {
			cor.Points = DefaultPoints
		}
		if cor.Averaging == 0 {
			cor.Averaging = DefaultAveraging
		}
		if cor.UpdateFrequency == 0 {
			cor.UpdateFrequency = DefaultUpdateFrequency
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every correlation block for usable parameters.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Correlation))
	for _, cor := range c.Correlation {
		if cor.Name == "" {
			return fmt.Errorf("correlation without a name")
		}
		if seen[cor.Name] {
			return fmt.Errorf("duplicate correlation name %q", cor.Name)
		}
		seen[cor.Name] = true

		if len(cor.A.Columns) == 0 || len(cor.B.Columns) == 0 {
			return fmt.Errorf("correlation %q: both a and b need at least one column", cor.Name)
		}
		if len(cor.A.Columns) != len(cor.B.Columns) {
			return fmt.Errorf("correlation %q: a selects %d columns, b selects %d",
				cor.Name, len(cor.A.Columns), len(cor.B.Columns))
		}
		if cor.Blocks <= 0 || cor.Points <= 0 || cor.Averaging <= 0 {
			return fmt.Errorf("correlation %q: blocks, points and averaging must be positive", cor.Name)
		}
		if cor.UpdateFrequency <= 0 {
			return fmt.Errorf("correlation %q: update_frequency must be positive", cor.Name)
		}
	}
	return nil
}
