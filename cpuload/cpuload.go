// Package cpuload specializes the series accumulator for CPU load, whose
// values are constrained to [0, 1].
package cpuload

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/mweagle/goloadgen/config"
	"github.com/mweagle/goloadgen/generator"
	"github.com/mweagle/goloadgen/series"
)

const (
	MinLoad = 0.0
	MaxLoad = 1.0
)

var ErrValueOutOfRange = errors.New("value out of range")

// Params are the settings shared by both CPU load policies.
type Params struct {
	StartValue float64
	StartTime  float64
	Duration   float64
	Timestep   series.Sampler
	Precision  int
}

// CPULoad is a TimeSerie whose values stay in [MinLoad, MaxLoad].
type CPULoad struct {
	*series.TimeSerie
	kind string
}

// ValueRange is the fixed value axis used when plotting.
func (cl *CPULoad) ValueRange() (float64, float64) {
	return MinLoad, MaxLoad
}

// Kind is either config.KindConstant or config.KindRandomWalk.
func (cl *CPULoad) Kind() string {
	return cl.kind
}

// NewConstant returns a series whose every segment holds p.StartValue.
func NewConstant(p Params) (*CPULoad, error) {
	if err := checkLoad("start value", p.StartValue); err != nil {
		return nil, err
	}
	value, valueErr := generator.NewVariable(generator.Constant(p.StartValue), nil)
	if valueErr != nil {
		return nil, valueErr
	}
	return newCPULoad(config.KindConstant, p, series.SampledValue{Sampler: value})
}

// NewRandomWalk returns a series whose value moves by a perturbation drawn
// from walk, rescaled to [-stepScale/2, stepScale/2] for the unit-support
// families, and clamped to [MinLoad, MaxLoad].
func NewRandomWalk(p Params, stepScale float64, walk generator.Distribution, src rand.Source) (*CPULoad, error) {
	if err := checkLoad("start value", p.StartValue); err != nil {
		return nil, err
	}
	if !(stepScale > 0) {
		return nil, fmt.Errorf("%w: step scale must be positive, got %v", ErrValueOutOfRange, stepScale)
	}
	if walk.Kind != generator.KindContinuous {
		return nil, fmt.Errorf("%w: random walk needs a continuous family, got %s",
			generator.ErrInvalidDistributionType,
			walk.Kind)
	}
	scaledWalk := walk.WithParams(map[string]float64{
		"scale": stepScale,
		"loc":   -stepScale / 2,
	})
	step, stepErr := generator.NewVariable(scaledWalk, src)
	if stepErr != nil {
		return nil, stepErr
	}
	return newCPULoad(config.KindRandomWalk, p, series.RandomWalk{
		Step: step,
		Min:  MinLoad,
		Max:  MaxLoad,
	})
}

// FromConfig builds the policy named by cfg.Kind. Both the timestep and the
// walk variables draw from src.
func FromConfig(cfg *config.Config, src rand.Source, log *slog.Logger) (*CPULoad, error) {
	if log == nil {
		log = slog.Default()
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	timestepDist, timestepDistErr := generator.ParseDistribution(cfg.Timestep)
	if timestepDistErr != nil {
		return nil, fmt.Errorf("timestep: %w", timestepDistErr)
	}
	timestep, timestepErr := generator.NewVariable(timestepDist, src)
	if timestepErr != nil {
		return nil, fmt.Errorf("timestep: %w", timestepErr)
	}
	params := Params{
		StartValue: cfg.StartValue,
		StartTime:  cfg.StartTime,
		Duration:   cfg.Duration,
		Timestep:   timestep,
		Precision:  cfg.Precision,
	}
	log.Debug("Creating CPU load series",
		"kind", cfg.Kind,
		"timestep", timestep.Name(),
		"startValue", cfg.StartValue,
		"duration", cfg.Duration)

	if cfg.Kind == config.KindConstant {
		return NewConstant(params)
	}
	walkDist, walkDistErr := generator.ParseDistribution(cfg.Walk)
	if walkDistErr != nil {
		return nil, fmt.Errorf("walk: %w", walkDistErr)
	}
	return NewRandomWalk(params, cfg.StepScale, walkDist, src)
}

func newCPULoad(kind string, p Params, policy series.NextValuePolicy) (*CPULoad, error) {
	ts, tsErr := series.New(series.Params{
		StartTime:  p.StartTime,
		Duration:   p.Duration,
		StartValue: p.StartValue,
		Precision:  p.Precision,
		Timestep:   p.Timestep,
		Policy:     policy,
	})
	if tsErr != nil {
		return nil, tsErr
	}
	return &CPULoad{TimeSerie: ts, kind: kind}, nil
}

func checkLoad(name string, value float64) error {
	if !(value >= MinLoad && value <= MaxLoad) {
		return fmt.Errorf("%w: %s must be in [%v, %v], got %v", ErrValueOutOfRange, name, MinLoad, MaxLoad, value)
	}
	return nil
}
