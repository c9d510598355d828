// Package scenario reads and writes JSON workload scenario files:
//
//	{"repeat": 1, "scenario": [{"cpu_load": [0.5], "duration": 20}, ...]}
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// DefaultRepeat is used when a scenario file doesn't say how many times to
// replay it.
const DefaultRepeat = 1

// SegmentSource yields (duration, value) pairs in order.
type SegmentSource interface {
	All() iter.Seq2[float64, float64]
}

// Slot is one constant-load interval. CPULoad holds one value per core.
type Slot struct {
	CPULoad  []float64 `json:"cpu_load"`
	Duration float64   `json:"duration"`
}

type Scenario struct {
	Repeat int    `json:"repeat"`
	Slots  []Slot `json:"scenario"`
}

// FromSeries builds a single-core scenario, one slot per segment.
func FromSeries(src SegmentSource, repeat int) *Scenario {
	scenario := &Scenario{
		Repeat: repeat,
		Slots:  make([]Slot, 0),
	}
	for duration, value := range src.All() {
		scenario.Slots = append(scenario.Slots, Slot{
			CPULoad:  []float64{value},
			Duration: duration,
		})
	}
	return scenario
}

// Marshal encodes the scenario. A positive indent pretty-prints with that
// many spaces, otherwise the output is compact.
func (s *Scenario) Marshal(indent int) ([]byte, error) {
	if indent > 0 {
		return json.MarshalIndent(s, "", strings.Repeat(" ", indent))
	}
	return json.Marshal(s)
}

// Durations returns the slot durations in order.
func (s *Scenario) Durations() []float64 {
	durations := make([]float64, len(s.Slots))
	for i, eachSlot := range s.Slots {
		durations[i] = eachSlot.Duration
	}
	return durations
}

// Loads returns the first core's load of every slot.
func (s *Scenario) Loads() []float64 {
	loads := make([]float64, len(s.Slots))
	for i, eachSlot := range s.Slots {
		if len(eachSlot.CPULoad) != 0 {
			loads[i] = eachSlot.CPULoad[0]
		}
	}
	return loads
}

// TotalDuration is the length of one replay.
func (s *Scenario) TotalDuration() float64 {
	total := 0.0
	for _, eachSlot := range s.Slots {
		total += eachSlot.Duration
	}
	return total
}

// Export writes src as a scenario document to w.
func Export(w io.Writer, src SegmentSource, repeat int, indent int) error {
	data, marshalErr := FromSeries(src, repeat).Marshal(indent)
	if marshalErr != nil {
		return marshalErr
	}
	_, writeErr := w.Write(data)
	return writeErr
}

// WriteFile exports src to path, replacing any existing file.
func WriteFile(path string, src SegmentSource, repeat int, indent int) (err error) {
	outFile, createErr := os.Create(path)
	if createErr != nil {
		return fmt.Errorf("creating scenario file: %w", createErr)
	}
	defer func() {
		closeErr := outFile.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("closing scenario file: %w", closeErr)
		}
	}()
	if exportErr := Export(outFile, src, repeat, indent); exportErr != nil {
		return fmt.Errorf("writing scenario file: %w", exportErr)
	}
	return nil
}
