package cpuload

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/mweagle/goloadgen/config"
	"github.com/mweagle/goloadgen/generator"
	"github.com/mweagle/goloadgen/series"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustVariable(t *testing.T, expr string, src rand.Source) *generator.Variable {
	t.Helper()
	v, err := generator.NewVariable(generator.MustParseDistribution(expr), src)
	require.NoError(t, err)
	return v
}

func TestNewConstant_FiveEqualSegments(t *testing.T) {
	load, err := NewConstant(Params{
		StartValue: 0.5,
		StartTime:  0,
		Duration:   100,
		Timestep:   mustVariable(t, "20", nil),
		Precision:  2,
	})
	require.NoError(t, err)
	require.True(t, load.Fill(quietLogger()))

	want := []series.Segment{{Duration: 20, Value: 0.5}, {Duration: 20, Value: 0.5}, {Duration: 20, Value: 0.5}, {Duration: 20, Value: 0.5}, {Duration: 20, Value: 0.5}}
	assert.Equal(t, want, load.Segments())
	assert.Equal(t, 100.0, load.CurrentTime())
	assert.Equal(t, config.KindConstant, load.Kind())
}

func TestNewConstant_RandomTimestepKeepsValue(t *testing.T) {
	load, err := NewConstant(Params{
		StartValue: 0.37,
		Duration:   5000,
		Timestep:   mustVariable(t, "geom(p=0.2)", rand.NewSource(11)),
		Precision:  2,
	})
	require.NoError(t, err)
	require.True(t, load.Fill(quietLogger()))

	total := 0.0
	for duration, value := range load.All() {
		assert.Equal(t, 0.37, value)
		assert.Greater(t, duration, 0.0)
		total += duration
	}
	assert.InDelta(t, 5000.0, total, 1e-9)
}

func TestNewRandomWalk_StepBoundAndRange(t *testing.T) {
	const stepScale = 0.1
	src := rand.NewSource(1234)
	load, err := NewRandomWalk(Params{
		StartValue: 0.05,
		Duration:   20000,
		Timestep:   mustVariable(t, "randint(low=1, high=10)", src),
		Precision:  2,
	}, stepScale, generator.MustParseDistribution("beta(a=0.8, b=0.8)"), src)
	require.NoError(t, err)
	require.True(t, load.Fill(quietLogger()))

	values := load.Values()
	require.Greater(t, len(values), 100)
	for i, eachValue := range values {
		assert.GreaterOrEqual(t, eachValue, 0.0)
		assert.LessOrEqual(t, eachValue, 1.0)
		if i == 0 {
			continue
		}
		delta := math.Abs(eachValue - values[i-1])
		if delta > stepScale {
			assert.True(t, eachValue == 0 || eachValue == 1, "step %d: jump %v without clamping", i, delta)
		}
	}
	assert.Equal(t, config.KindRandomWalk, load.Kind())
}

func TestNewRandomWalk_ClampsAtBounds(t *testing.T) {
	// A uniform walk with a large scale hits both bounds quickly
	src := rand.NewSource(5)
	load, err := NewRandomWalk(Params{
		StartValue: 0.5,
		Duration:   2000,
		Timestep:   mustVariable(t, "1", nil),
		Precision:  2,
	}, 1.5, generator.MustParseDistribution("uniform()"), src)
	require.NoError(t, err)
	require.True(t, load.Fill(quietLogger()))

	sawZero, sawOne := false, false
	for _, eachValue := range load.Values() {
		require.GreaterOrEqual(t, eachValue, 0.0)
		require.LessOrEqual(t, eachValue, 1.0)
		sawZero = sawZero || eachValue == 0
		sawOne = sawOne || eachValue == 1
	}
	assert.True(t, sawZero)
	assert.True(t, sawOne)
}

func TestNewRandomWalk_Errors(t *testing.T) {
	timestep := mustVariable(t, "20", nil)
	params := Params{StartValue: 0.5, Duration: 100, Timestep: timestep, Precision: 2}
	beta := generator.MustParseDistribution("beta(a=0.8, b=0.8)")

	_, err := NewRandomWalk(params, 0.1, generator.MustParseDistribution("geom(p=0.5)"), nil)
	assert.ErrorIs(t, err, generator.ErrInvalidDistributionType)

	_, err = NewRandomWalk(params, 0.1, generator.Constant(0.1), nil)
	assert.ErrorIs(t, err, generator.ErrInvalidDistributionType)

	_, err = NewRandomWalk(params, 0, beta, nil)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	outOfRange := params
	outOfRange.StartValue = 1.2
	_, err = NewRandomWalk(outOfRange, 0.1, beta, nil)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	_, err = NewConstant(outOfRange)
	assert.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestValueRange(t *testing.T) {
	load, err := NewConstant(Params{StartValue: 0.5, Duration: 10, Timestep: mustVariable(t, "1", nil)})
	require.NoError(t, err)
	lower, upper := load.ValueRange()
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 1.0, upper)
}

func TestFromConfig(t *testing.T) {
	seed := uint64(77)
	cfg := config.Default()
	cfg.Seed = &seed
	cfg.Duration = 500
	cfg.Timestep = "geom(p=0.2)"

	first, err := FromConfig(cfg, cfg.Source(), quietLogger())
	require.NoError(t, err)
	require.True(t, first.Fill(quietLogger()))

	second, err := FromConfig(cfg, cfg.Source(), quietLogger())
	require.NoError(t, err)
	require.True(t, second.Fill(quietLogger()))

	assert.Equal(t, first.Segments(), second.Segments())
	assert.Equal(t, config.KindRandomWalk, first.Kind())

	cfg.Kind = config.KindConstant
	constant, err := FromConfig(cfg, cfg.Source(), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, config.KindConstant, constant.Kind())
}

func TestFromConfig_Invalid(t *testing.T) {
	cfg := config.Default()
	cfg.Duration = -1
	_, err := FromConfig(cfg, nil, quietLogger())
	assert.Error(t, err)
}

func TestFromConfig_NilLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Kind = config.KindConstant
	load, err := FromConfig(cfg, cfg.Source(), nil)
	require.NoError(t, err)
	assert.True(t, load.Fill(nil))
}
