package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// ReadFile loads a scenario document from path.
func ReadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Read(data)
}

// Read parses a scenario document. A missing repeat defaults to
// DefaultRepeat; every slot needs a numeric duration and a cpu_load array.
func Read(data []byte) (*Scenario, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidScenario)
	}
	root := gjson.ParseBytes(data)

	repeat := DefaultRepeat
	repeatResult := root.Get("repeat")
	if repeatResult.Exists() {
		if repeatResult.Type != gjson.Number {
			return nil, fmt.Errorf("%w: repeat must be a number, got %s", ErrInvalidScenario, repeatResult.Raw)
		}
		repeat = int(repeatResult.Int())
	}

	slotsResult := root.Get("scenario")
	if !slotsResult.IsArray() {
		return nil, fmt.Errorf("%w: scenario must be an array", ErrInvalidScenario)
	}
	slotResults := slotsResult.Array()
	scenario := &Scenario{
		Repeat: repeat,
		Slots:  make([]Slot, 0, len(slotResults)),
	}
	for i, eachSlot := range slotResults {
		duration := eachSlot.Get("duration")
		if duration.Type != gjson.Number {
			return nil, fmt.Errorf("%w: scenario[%d].duration must be a number", ErrInvalidScenario, i)
		}
		loads := eachSlot.Get("cpu_load")
		if !loads.IsArray() {
			return nil, fmt.Errorf("%w: scenario[%d].cpu_load must be an array", ErrInvalidScenario, i)
		}
		slot := Slot{
			Duration: duration.Float(),
			CPULoad:  make([]float64, 0, 1),
		}
		for j, eachLoad := range loads.Array() {
			if eachLoad.Type != gjson.Number {
				return nil, fmt.Errorf("%w: scenario[%d].cpu_load[%d] must be a number", ErrInvalidScenario, i, j)
			}
			slot.CPULoad = append(slot.CPULoad, eachLoad.Float())
		}
		scenario.Slots = append(scenario.Slots, slot)
	}
	return scenario, nil
}
