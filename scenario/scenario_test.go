package scenario

import (
	"bytes"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeries [][2]float64

func (fs fakeSeries) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for _, eachPair := range fs {
			if !yield(eachPair[0], eachPair[1]) {
				return
			}
		}
	}
}

func TestExport_Compact(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, fakeSeries{{20, 0.5}, {10, 0.25}}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t,
		`{"repeat":1,"scenario":[{"cpu_load":[0.5],"duration":20},{"cpu_load":[0.25],"duration":10}]}`,
		buf.String())
}

func TestExport_Indented(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, fakeSeries{{20, 0.5}}, 2, 2)
	require.NoError(t, err)
	want := `{
  "repeat": 2,
  "scenario": [
    {
      "cpu_load": [
        0.5
      ],
      "duration": 20
    }
  ]
}`
	assert.Equal(t, want, buf.String())
}

func TestExport_EmptySeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, fakeSeries{}, 1, 0))
	assert.Equal(t, `{"repeat":1,"scenario":[]}`, buf.String())
}

func TestWriteFile_IsIdempotentAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 4096), 0600))

	series := fakeSeries{{20, 0.5}, {20, 0.75}, {60, 1}}
	require.NoError(t, WriteFile(path, series, 3, 4))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, series, 3, 4))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, string(first), "x")
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "scenario.json"), fakeSeries{}, 1, 0)
	assert.Error(t, err)
}

func TestRead_RoundTrip(t *testing.T) {
	series := fakeSeries{{20, 0.5}, {12.5, 0.75}, {67.5, 0}}
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, series, 4, 2))

	scenario, err := Read(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 4, scenario.Repeat)
	assert.Equal(t, []float64{20, 12.5, 67.5}, scenario.Durations())
	assert.Equal(t, []float64{0.5, 0.75, 0}, scenario.Loads())
	assert.Equal(t, 100.0, scenario.TotalDuration())
}

func TestRead_MultiCoreAndDefaultRepeat(t *testing.T) {
	scenario, err := Read([]byte(`{"scenario":[{"cpu_load":[0.1,0.9],"duration":5}]}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultRepeat, scenario.Repeat)
	require.Len(t, scenario.Slots, 1)
	assert.Equal(t, []float64{0.1, 0.9}, scenario.Slots[0].CPULoad)
	assert.Equal(t, []float64{0.1}, scenario.Loads())
}

func TestRead_Invalid(t *testing.T) {
	for _, doc := range []string{
		`{"repeat":1,"scenario":[`,
		`{"repeat":"one","scenario":[]}`,
		`{"repeat":1}`,
		`{"scenario":[{"cpu_load":[0.5]}]}`,
		`{"scenario":[{"cpu_load":0.5,"duration":1}]}`,
		`{"scenario":[{"cpu_load":["high"],"duration":1}]}`,
	} {
		t.Run(doc, func(t *testing.T) {
			_, err := Read([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, WriteFile(path, fakeSeries{{1, 0.5}}, 1, 0))
	scenario, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, scenario.Slots, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
