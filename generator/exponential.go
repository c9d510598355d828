package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func buildExponential(_ map[string]float64, src rand.Source) (distuv.Rander, error) {
	return distuv.Exponential{
		Rate: 1,
		Src:  src,
	}, nil
}

func buildGamma(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	shape := params["a"]
	if shape <= 0 {
		return nil, paramError("a", "a > 0", shape)
	}
	return distuv.Gamma{
		Alpha: shape,
		Beta:  1,
		Src:   src,
	}, nil
}

func buildWeibull(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	shape := params["c"]
	if shape <= 0 {
		return nil, paramError("c", "c > 0", shape)
	}
	return distuv.Weibull{
		K:      shape,
		Lambda: 1,
		Src:    src,
	}, nil
}
