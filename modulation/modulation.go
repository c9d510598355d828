// Package modulation provides time-indexed functions to multiply a filled
// series by, through series.Compose.
//
// Expressions use the same key=value form as distributions:
//
//	sine(period=3600, amplitude=0.3, offset=1)
//	linear(slope=0.001, intercept=0.5)
//	step(at=600, before=1, after=0.5)
//	constant(value=0.8)
package modulation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidModulation = errors.New("invalid modulation")

// Func maps an absolute time to a multiplicative factor.
type Func func(t float64) float64

type builder struct {
	required []string
	defaults map[string]float64
	build    func(params map[string]float64) (Func, error)
}

var builderMap = map[string]builder{
	"sine": {
		required: []string{"period", "amplitude"},
		defaults: map[string]float64{"offset": 1, "phase": 0},
		build: func(params map[string]float64) (Func, error) {
			period := params["period"]
			if !(period > 0) {
				return nil, fmt.Errorf("period must be > 0, got %v", period)
			}
			amplitude, offset, phase := params["amplitude"], params["offset"], params["phase"]
			return func(t float64) float64 {
				return offset + amplitude*math.Sin(2*math.Pi*t/period+phase)
			}, nil
		},
	},
	"linear": {
		required: []string{"slope"},
		defaults: map[string]float64{"intercept": 1},
		build: func(params map[string]float64) (Func, error) {
			slope, intercept := params["slope"], params["intercept"]
			return func(t float64) float64 {
				return intercept + slope*t
			}, nil
		},
	},
	"step": {
		required: []string{"at"},
		defaults: map[string]float64{"before": 1, "after": 1},
		build: func(params map[string]float64) (Func, error) {
			at, before, after := params["at"], params["before"], params["after"]
			return func(t float64) float64 {
				if t < at {
					return before
				}
				return after
			}, nil
		},
	},
	"constant": {
		required: []string{"value"},
		build: func(params map[string]float64) (Func, error) {
			value := params["value"]
			return func(float64) float64 {
				return value
			}, nil
		},
	},
}

var reParams = regexp.MustCompile(`[()]`)

// Parse builds the Func described by expr.
func Parse(expr string) (Func, error) {
	exprParts := reParams.Split(strings.TrimSpace(expr), -1)
	if len(exprParts) != 3 || len(strings.TrimSpace(exprParts[2])) != 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModulation, expr)
	}
	name := strings.ToLower(strings.TrimSpace(exprParts[0]))
	modBuilder, modBuilderExists := builderMap[name]
	if !modBuilderExists {
		return nil, fmt.Errorf("%w: unsupported function %q. Supported: %v", ErrInvalidModulation, name, Names())
	}

	params := make(map[string]float64, len(modBuilder.defaults))
	for eachKey, eachVal := range modBuilder.defaults {
		params[eachKey] = eachVal
	}
	args := strings.TrimSpace(exprParts[1])
	if len(args) != 0 {
		for _, eachArg := range strings.Split(args, ",") {
			kv := strings.SplitN(eachArg, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("%w: parameter %q must be key=value", ErrInvalidModulation, strings.TrimSpace(eachArg))
			}
			key := strings.TrimSpace(kv[0])
			_, isDefault := modBuilder.defaults[key]
			if !isDefault && !contains(modBuilder.required, key) {
				return nil, fmt.Errorf("%w: %s does not accept parameter %q", ErrInvalidModulation, name, key)
			}
			val, parseErr := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
			if parseErr != nil {
				return nil, fmt.Errorf("%w: parameter %q: %s", ErrInvalidModulation, key, parseErr.Error())
			}
			params[key] = val
		}
	}
	for _, eachKey := range modBuilder.required {
		if _, ok := params[eachKey]; !ok {
			return nil, fmt.Errorf("%w: %s requires parameter %q", ErrInvalidModulation, name, eachKey)
		}
	}
	fn, buildErr := modBuilder.build(params)
	if buildErr != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidModulation, name, buildErr.Error())
	}
	return fn, nil
}

// Names lists the supported functions.
func Names() []string {
	names := make([]string, 0, len(builderMap))
	for eachName := range builderMap {
		names = append(names, eachName)
	}
	sort.Strings(names)
	return names
}

func contains(values []string, target string) bool {
	for _, eachVal := range values {
		if eachVal == target {
			return true
		}
	}
	return false
}
