package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func buildPoisson(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	lambda := params["mu"]
	if lambda <= 0 {
		return nil, paramError("mu", "mu > 0", lambda)
	}
	return distuv.Poisson{
		Lambda: lambda,
		Src:    src,
	}, nil
}
