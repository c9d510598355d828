package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func buildPareto(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	alpha := params["b"]
	if alpha <= 0 {
		return nil, paramError("b", "b > 0", alpha)
	}
	return distuv.Pareto{
		Xm:    1,
		Alpha: alpha,
		Src:   src,
	}, nil
}
