package series

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSampler always returns the same value
type constSampler float64

func (c constSampler) Get() float64 { return float64(c) }

// seqSampler replays a fixed sequence, repeating the last value
type seqSampler struct {
	values []float64
	next   int
}

func (s *seqSampler) Get() float64 {
	val := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return val
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newSerie(t *testing.T, startTime, duration, startValue float64, timestep Sampler, policy NextValuePolicy) *TimeSerie {
	t.Helper()
	ts, err := New(Params{
		StartTime:  startTime,
		Duration:   duration,
		StartValue: startValue,
		Precision:  2,
		Timestep:   timestep,
		Policy:     policy,
	})
	require.NoError(t, err)
	return ts
}

func TestNew_Validation(t *testing.T) {
	valid := Params{Duration: 10, Precision: 2, Timestep: constSampler(1), Policy: SampledValue{constSampler(0)}}

	tests := []struct {
		name    string
		mutate  func(p *Params)
		wantErr error
	}{
		{"negative duration", func(p *Params) { p.Duration = -1 }, ErrInvalidDuration},
		{"infinite duration", func(p *Params) { p.Duration = math.Inf(1) }, ErrInvalidDuration},
		{"nan start time", func(p *Params) { p.StartTime = math.NaN() }, ErrInvalidDuration},
		{"negative precision", func(p *Params) { p.Precision = -1 }, ErrInvalidPrecision},
		{"huge precision", func(p *Params) { p.Precision = MaxPrecision + 1 }, ErrInvalidPrecision},
		{"nil timestep", func(p *Params) { p.Timestep = nil }, ErrMissingSampler},
		{"nil policy", func(p *Params) { p.Policy = nil }, ErrMissingSampler},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)
			_, err := New(params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_InitialState(t *testing.T) {
	ts := newSerie(t, 5, 10, 0.333, constSampler(1), SampledValue{constSampler(0)})
	assert.Equal(t, 5.0, ts.StartTime())
	assert.Equal(t, 15.0, ts.EndTime())
	assert.Equal(t, 5.0, ts.CurrentTime())
	assert.Equal(t, 0.33, ts.CurrentValue())
	assert.Equal(t, 0.33, ts.StartValue())
	assert.Equal(t, 0, ts.Len())
	assert.False(t, ts.Done())
}

func TestAppend_RecordsPreviousValue(t *testing.T) {
	ts := newSerie(t, 0, 100, 0.5, constSampler(1), SampledValue{constSampler(0)})

	assert.True(t, ts.Append(10, 0.7))
	assert.True(t, ts.Append(25, 0.2))

	assert.Equal(t, []Segment{{10, 0.5}, {15, 0.7}}, ts.Segments())
	assert.Equal(t, 25.0, ts.CurrentTime())
	assert.Equal(t, 0.2, ts.CurrentValue())
}

func TestAppend_RoundsCandidateValue(t *testing.T) {
	ts := newSerie(t, 0, 100, 0.5, constSampler(1), SampledValue{constSampler(0)})
	require.True(t, ts.Append(1, 0.123456))
	assert.Equal(t, 0.12, ts.CurrentValue())
	require.True(t, ts.Append(2, 0.5))
	assert.Equal(t, []float64{0.5, 0.12}, ts.Values())
}

func TestAppend_NoOpWhenNotAfterCurrentTime(t *testing.T) {
	ts := newSerie(t, 0, 100, 0.5, constSampler(1), SampledValue{constSampler(0)})
	require.True(t, ts.Append(10, 0.7))

	for _, candidate := range []float64{10, 9.99, 0, -5} {
		assert.False(t, ts.Append(candidate, 0.9))
		assert.Equal(t, 10.0, ts.CurrentTime())
		assert.Equal(t, 0.7, ts.CurrentValue())
		assert.Equal(t, 1, ts.Len())
	}
}

func TestStep_ClipsToHorizonAndRepeatsCurrentValue(t *testing.T) {
	ts := newSerie(t, 0, 30, 0.5, constSampler(1), SampledValue{constSampler(0)})

	require.True(t, ts.Step(20, 0.8))
	// Crossing the horizon discards the new value
	require.True(t, ts.Step(20, 0.1))
	assert.Equal(t, []Segment{{20, 0.5}, {10, 0.8}}, ts.Segments())
	assert.True(t, ts.Done())
	assert.Equal(t, 0.8, ts.CurrentValue())

	assert.False(t, ts.Step(5, 0.3))
	assert.Equal(t, 2, ts.Len())
}

func TestStep_LandingExactlyOnHorizon(t *testing.T) {
	ts := newSerie(t, 0, 40, 0.5, constSampler(1), SampledValue{constSampler(0)})
	require.True(t, ts.Step(20, 0.8))
	require.True(t, ts.Step(20, 0.1))
	assert.Equal(t, []Segment{{20, 0.5}, {20, 0.8}}, ts.Segments())
	assert.Equal(t, 0.8, ts.CurrentValue())
}

func TestFill_ConstantTimestep(t *testing.T) {
	ts := newSerie(t, 0, 100, 0.5, constSampler(20), SampledValue{constSampler(0.5)})

	assert.True(t, ts.Fill(discardLogger()))
	assert.Equal(t, []Segment{{20, 0.5}, {20, 0.5}, {20, 0.5}, {20, 0.5}, {20, 0.5}}, ts.Segments())
	assert.Equal(t, 100.0, ts.CurrentTime())
	assert.InDelta(t, 100.0, sum(ts.Durations()), 1e-9)
}

func TestFill_ImmediateClip(t *testing.T) {
	ts := newSerie(t, 0, 10, 0.4, constSampler(15), SampledValue{constSampler(0.9)})

	assert.True(t, ts.Fill(discardLogger()))
	assert.Equal(t, []Segment{{10, 0.4}}, ts.Segments())
}

func TestFill_ZeroTimestepStopsEarly(t *testing.T) {
	var logged bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logged, nil))
	timestep := &seqSampler{values: []float64{10, 10, 0, 10}}
	ts := newSerie(t, 0, 100, 0.5, timestep, SampledValue{constSampler(0.5)})

	assert.False(t, ts.Fill(log))
	assert.Equal(t, 2, ts.Len())
	assert.Equal(t, 20.0, ts.CurrentTime())
	assert.Equal(t, ts.CurrentTime()-ts.StartTime(), sum(ts.Durations()))
	assert.False(t, ts.Done())
	assert.Contains(t, logged.String(), "stopped before the horizon")
}

func TestFill_ZeroDurationIsAlreadyDone(t *testing.T) {
	ts := newSerie(t, 3, 0, 0.5, constSampler(1), SampledValue{constSampler(0.5)})
	assert.True(t, ts.Fill(nil))
	assert.Equal(t, 0, ts.Len())
}

func TestFill_InvariantsWithFractionalTimesteps(t *testing.T) {
	timestep := &seqSampler{values: []float64{0.3, 1.7, 2.25, 0.05, 3.1, 4.4}}
	values := &seqSampler{values: []float64{0.1, 0.9, 0.33, 0.5}}
	ts := newSerie(t, 2.5, 50, 0.2, timestep, SampledValue{values})

	require.True(t, ts.Fill(discardLogger()))
	for duration := range ts.All() {
		assert.Greater(t, duration, 0.0)
	}
	assert.InDelta(t, 50.0, sum(ts.Durations()), 1e-9)
	assert.Equal(t, 52.5, ts.CurrentTime())
	assert.InDelta(t, ts.Elapsed(), sum(ts.Durations()), 1e-9)
}

func TestAll_IsRestartable(t *testing.T) {
	ts := newSerie(t, 0, 60, 0.5, constSampler(20), SampledValue{constSampler(0.5)})
	require.True(t, ts.Fill(discardLogger()))

	count := func() int {
		n := 0
		for range ts.All() {
			n++
		}
		return n
	}
	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())

	// Early break
	seen := 0
	for range ts.All() {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestString(t *testing.T) {
	ts := newSerie(t, 0, 30, 0.5, constSampler(20), SampledValue{constSampler(0.25)})
	require.True(t, ts.Fill(discardLogger()))
	assert.Equal(t, "20 0.5\n10 0.25", ts.String())
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
