// Package config loads pipeline configuration from YAML files. The engine
// itself only takes an explicit Options struct; this package exists for
// callers that keep their analysis settings in files.
package config

import (
	"os"

	"github.com/lukevaneijk/pseudoSensReset/sensitivity"
	"gopkg.in/yaml.v3"
)

// Config mirrors sensitivity.Options with yaml tags.
type Config struct {
	// Zero means as many harmonic orders as the grid supports.
	MaxHarmonicOrder int `yaml:"max_harmonic_order"`
	// Time samples per period of the highest harmonic in peak extraction.
	SamplesPerHighestHarmonic int `yaml:"samples_per_highest_harmonic"`
}

// DefaultConfig returns the stated defaults: grid-limited harmonic order and
// 100 samples per highest harmonic.
func DefaultConfig() *Config {
	return &Config{
		MaxHarmonicOrder:          0,
		SamplesPerHighestHarmonic: sensitivity.DefaultSamplesPerHighestHarmonic,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options converts the configuration to engine options.
func (c *Config) Options() sensitivity.Options {
	return sensitivity.Options{
		MaxHarmonicOrder:          c.MaxHarmonicOrder,
		SamplesPerHighestHarmonic: c.SamplesPerHighestHarmonic,
	}
}
