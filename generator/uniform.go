package generator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
//  _   _      _  __
// | | | |_ _ (_)/ _|___ _ _ _ __
// | |_| | ' \| |  _/ _ \ '_| '  \
//  \___/|_||_|_|_| \___/_| |_|_|_|
//
// /////////////////////////////////////////////////////////////////////////////

// uniform on [0, 1); loc and scale move it to [loc, loc+scale)
func buildUniform(_ map[string]float64, src rand.Source) (distuv.Rander, error) {
	return distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: src,
	}, nil
}

const maxRandIntWidth = 1 << 63

// randIntGenerator draws integers uniformly from [low, high).
type randIntGenerator struct {
	low  int64
	high int64
	rnd  *rand.Rand
}

func (rg *randIntGenerator) Rand() float64 {
	return float64(rg.low + rg.rnd.Int63n(rg.high-rg.low))
}

func buildRandInt(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	low := params["low"]
	high := params["high"]
	if low != math.Trunc(low) {
		return nil, paramError("low", "integer", low)
	}
	if high != math.Trunc(high) {
		return nil, paramError("high", "integer", high)
	}
	if high <= low {
		return nil, paramError("high", "high > low", high)
	}
	// Int63n takes the width, so it must fit in an int64 as well
	if low < -maxRandIntWidth {
		return nil, paramError("low", "low >= -2^63", low)
	}
	if high-low >= maxRandIntWidth {
		return nil, paramError("high", "high-low < 2^63", high)
	}
	return &randIntGenerator{
		low:  int64(low),
		high: int64(high),
		rnd:  rand.New(src),
	}, nil
}
