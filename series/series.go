// Package series implements the piecewise-constant time series accumulator.
//
// A TimeSerie holds a running clock and a running value. Each step samples a
// timestep and a candidate value; a segment is recorded only when the step
// closes a strictly positive interval, and the final segment is clipped
// exactly to the horizon.
package series

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// MaxPrecision is the largest supported rounding precision.
const MaxPrecision = 15

var (
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrInvalidPrecision = errors.New("invalid precision")
	ErrMissingSampler   = errors.New("missing sampler")
)

// Sampler produces one scalar sample per call.
type Sampler interface {
	Get() float64
}

// Segment is a constant-value interval.
type Segment struct {
	Duration float64
	Value    float64
}

// Params configures a new TimeSerie.
type Params struct {
	StartTime  float64
	Duration   float64
	StartValue float64
	// Precision is the number of decimal digits recorded values are rounded to
	Precision int
	Timestep  Sampler
	Policy    NextValuePolicy
}

// TimeSerie accumulates (duration, value) segments over
// [startTime, startTime+duration].
type TimeSerie struct {
	startTime    float64
	endTime      float64
	startValue   float64
	currentTime  float64
	currentValue float64
	precision    int
	durations    []float64
	values       []float64
	timestep     Sampler
	policy       NextValuePolicy
}

// New returns a running TimeSerie positioned at params.StartTime.
func New(params Params) (*TimeSerie, error) {
	if math.IsNaN(params.StartTime) || math.IsInf(params.StartTime, 0) {
		return nil, fmt.Errorf("%w: start time must be finite, got %v", ErrInvalidDuration, params.StartTime)
	}
	if math.IsNaN(params.Duration) || math.IsInf(params.Duration, 0) || params.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must be finite and >= 0, got %v", ErrInvalidDuration, params.Duration)
	}
	if params.Precision < 0 || params.Precision > MaxPrecision {
		return nil, fmt.Errorf("%w: precision must be in [0, %d], got %d", ErrInvalidPrecision, MaxPrecision, params.Precision)
	}
	if params.Timestep == nil {
		return nil, fmt.Errorf("%w: timestep", ErrMissingSampler)
	}
	if params.Policy == nil {
		return nil, fmt.Errorf("%w: value policy", ErrMissingSampler)
	}
	startValue := round(params.StartValue, params.Precision)
	return &TimeSerie{
		startTime:    params.StartTime,
		endTime:      params.StartTime + params.Duration,
		startValue:   startValue,
		currentTime:  params.StartTime,
		currentValue: startValue,
		precision:    params.Precision,
		durations:    make([]float64, 0),
		values:       make([]float64, 0),
		timestep:     params.Timestep,
		policy:       params.Policy,
	}, nil
}

// Append closes the interval ending at time, recording it with the value
// that was current while it was open, and makes value current. It is a no-op
// returning false unless time is strictly after the current time.
func (ts *TimeSerie) Append(time float64, value float64) bool {
	if !(time > ts.currentTime) {
		return false
	}
	ts.durations = append(ts.durations, time-ts.currentTime)
	ts.values = append(ts.values, ts.currentValue)
	ts.currentTime = time
	ts.currentValue = round(value, ts.precision)
	return true
}

// Step advances the clock by timestep. A step that reaches or crosses the
// horizon is clipped to it and repeats the current value; the new value is
// discarded.
func (ts *TimeSerie) Step(timestep float64, value float64) bool {
	if ts.currentTime >= ts.endTime {
		return false
	}
	candidateTime := ts.currentTime + timestep
	if candidateTime < ts.endTime {
		return ts.Append(candidateTime, value)
	}
	return ts.Append(ts.endTime, ts.currentValue)
}

// Fill draws (timestep, value) pairs until a Step records nothing. That is
// either the horizon, or a timestep that didn't move the clock forward, which
// ends generation early. Fill reports whether the horizon was reached.
func (ts *TimeSerie) Fill(log *slog.Logger) bool {
	if log == nil {
		log = slog.Default()
	}
	for {
		timestep := ts.timestep.Get()
		value := ts.policy.NextValue(ts.currentValue)
		if !ts.Step(timestep, value) {
			break
		}
	}
	if !ts.Done() {
		log.Warn("Series generation stopped before the horizon",
			"currentTime", ts.currentTime,
			"endTime", ts.endTime,
			"segments", len(ts.durations))
		return false
	}
	log.Debug("Series filled",
		"startTime", ts.startTime,
		"endTime", ts.endTime,
		"segments", len(ts.durations))
	return true
}

// All returns the recorded (duration, value) pairs in recording order. The
// sequence can be ranged over any number of times.
func (ts *TimeSerie) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i := range ts.durations {
			if !yield(ts.durations[i], ts.values[i]) {
				return
			}
		}
	}
}

// Segments returns a copy of the recorded segments.
func (ts *TimeSerie) Segments() []Segment {
	segments := make([]Segment, len(ts.durations))
	for i := range ts.durations {
		segments[i] = Segment{Duration: ts.durations[i], Value: ts.values[i]}
	}
	return segments
}

func (ts *TimeSerie) Durations() []float64 {
	return append([]float64(nil), ts.durations...)
}

func (ts *TimeSerie) Values() []float64 {
	return append([]float64(nil), ts.values...)
}

func (ts *TimeSerie) Len() int {
	return len(ts.durations)
}

// Done reports whether the clock reached the horizon.
func (ts *TimeSerie) Done() bool {
	return ts.currentTime >= ts.endTime
}

// Elapsed is the sum of the recorded durations.
func (ts *TimeSerie) Elapsed() float64 {
	return ts.currentTime - ts.startTime
}

func (ts *TimeSerie) StartTime() float64    { return ts.startTime }
func (ts *TimeSerie) EndTime() float64      { return ts.endTime }
func (ts *TimeSerie) StartValue() float64   { return ts.startValue }
func (ts *TimeSerie) CurrentTime() float64  { return ts.currentTime }
func (ts *TimeSerie) CurrentValue() float64 { return ts.currentValue }
func (ts *TimeSerie) Precision() int        { return ts.precision }

func (ts *TimeSerie) String() string {
	lines := make([]string, 0, len(ts.durations))
	for duration, value := range ts.All() {
		lines = append(lines, strconv.FormatFloat(duration, 'g', -1, 64)+" "+strconv.FormatFloat(value, 'g', -1, 64))
	}
	return strings.Join(lines, "\n")
}

func round(value float64, precision int) float64 {
	scale := math.Pow10(precision)
	return math.Round(value*scale) / scale
}
