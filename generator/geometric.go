package generator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// geometricGenerator counts the trials up to and including the first
// success, so the support starts at 1.
type geometricGenerator struct {
	prob float64
	rnd  *rand.Rand
}

func (gg *geometricGenerator) Rand() float64 {
	if gg.prob == 1 {
		return 1
	}
	// Inverse CDF, u in [0, 1)
	u := gg.rnd.Float64()
	return math.Floor(math.Log1p(-u)/math.Log1p(-gg.prob)) + 1
}

func buildGeometric(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	prob := params["p"]
	if prob <= 0 || prob > 1 {
		return nil, paramError("p", "0 < p <= 1", prob)
	}
	return &geometricGenerator{
		prob: prob,
		rnd:  rand.New(src),
	}, nil
}
