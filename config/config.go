// Package config holds the explicit configuration threaded through scenario
// generation.
//
// Values come from, in order of precedence:
//  1. Command-line flags
//  2. A YAML configuration file
//  3. Default values
//
// Example configuration file:
//
//	kind: random_walk
//	start_value: 0.3
//	duration: 3600
//	timestep: geom(p=0.2)
//	walk: beta(a=0.8, b=0.8)
//	step_scale: 0.1
//	seed: 42
//	output: cpu.json
//	plot: cpu.png
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"

	"github.com/mweagle/goloadgen/generator"
	"github.com/mweagle/goloadgen/modulation"
)

const (
	KindConstant   = "constant"
	KindRandomWalk = "random_walk"
)

// Defaults
const (
	DefaultTimestep   = "20"
	DefaultWalk       = "beta(a=0.8, b=0.8)"
	DefaultStepScale  = 0.1
	DefaultPrecision  = 2
	DefaultDuration   = 1000
	DefaultStartTime  = 0
	DefaultStartValue = 0.5
	DefaultRepeat     = 1
	DefaultOutput     = "scenario.json"
)

// Config holds all generation configuration.
type Config struct {
	Kind       string  `yaml:"kind"`
	StartValue float64 `yaml:"start_value"`
	StartTime  float64 `yaml:"start_time"`
	Duration   float64 `yaml:"duration"`
	// StepScale is the width of the random walk perturbation, centered on 0
	StepScale float64 `yaml:"step_scale"`
	// Timestep and Walk are distribution expressions, e.g. "geom(p=0.2)"
	Timestep  string  `yaml:"timestep"`
	Walk      string  `yaml:"walk"`
	Precision int     `yaml:"precision"`
	Seed      *uint64 `yaml:"seed,omitempty"`

	Repeat     int    `yaml:"repeat"`
	Indent     int    `yaml:"indent"`
	Output     string `yaml:"output"`
	Plot       string `yaml:"plot,omitempty"`
	Modulation string `yaml:"modulation,omitempty"`
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Kind:       KindRandomWalk,
		StartValue: DefaultStartValue,
		StartTime:  DefaultStartTime,
		Duration:   DefaultDuration,
		StepScale:  DefaultStepScale,
		Timestep:   DefaultTimestep,
		Walk:       DefaultWalk,
		Precision:  DefaultPrecision,
		Repeat:     DefaultRepeat,
		Output:     DefaultOutput,
	}
}

// LoadFile reads a YAML configuration file over the defaults. Unknown keys
// are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// An empty document leaves the defaults in place
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Kind != KindConstant && c.Kind != KindRandomWalk {
		return fmt.Errorf("unknown kind %q; valid: %s, %s", c.Kind, KindConstant, KindRandomWalk)
	}
	if c.StartValue < 0 || c.StartValue > 1 || math.IsNaN(c.StartValue) {
		return fmt.Errorf("start_value must be between 0 and 1, got %f", c.StartValue)
	}
	if math.IsNaN(c.StartTime) || math.IsInf(c.StartTime, 0) {
		return fmt.Errorf("start_time must be finite, got %f", c.StartTime)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Kind == KindRandomWalk && (!(c.StepScale > 0) || math.IsInf(c.StepScale, 0)) {
		return fmt.Errorf("step_scale must be positive, got %f", c.StepScale)
	}
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("precision must be between 0 and 15, got %d", c.Precision)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("repeat must be >= 1, got %d", c.Repeat)
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must be non-negative, got %d", c.Indent)
	}
	if len(c.Output) <= 0 {
		return fmt.Errorf("output must not be empty")
	}
	if _, err := generator.ParseDistribution(c.Timestep); err != nil {
		return fmt.Errorf("timestep: %w", err)
	}
	if c.Kind == KindRandomWalk {
		if _, err := generator.ParseDistribution(c.Walk); err != nil {
			return fmt.Errorf("walk: %w", err)
		}
	}
	if len(c.Modulation) != 0 {
		if _, err := modulation.Parse(c.Modulation); err != nil {
			return fmt.Errorf("modulation: %w", err)
		}
	}
	return nil
}

// Source returns the random source for one generation run: seeded when a
// seed is configured, time seeded otherwise.
func (c *Config) Source() rand.Source {
	if c.Seed != nil {
		return rand.NewSource(*c.Seed)
	}
	return rand.NewSource(uint64(time.Now().UnixNano()))
}
