package series

import "math"

// NextValuePolicy produces the candidate value for the next segment from the
// value currently held.
type NextValuePolicy interface {
	NextValue(current float64) float64
}

// SampledValue ignores the current value and returns a fresh sample.
type SampledValue struct {
	Sampler Sampler
}

func (sv SampledValue) NextValue(_ float64) float64 {
	return sv.Sampler.Get()
}

// RandomWalk adds a sampled perturbation to the current value and clamps the
// result to [Min, Max].
type RandomWalk struct {
	Step Sampler
	Min  float64
	Max  float64
}

func (rw RandomWalk) NextValue(current float64) float64 {
	return Clamp(current+rw.Step.Get(), rw.Min, rw.Max)
}

// Clamp limits value to [lower, upper].
func Clamp(value float64, lower float64, upper float64) float64 {
	return math.Max(lower, math.Min(upper, value))
}
