package generator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
// ___                        _ _ _
// | _ ) ___ _ _ _ _  ___ _  _| | (_)
// | _ \/ -_) '_| ' \/ _ \ || | | | |
// |___/\___|_| |_||_\___/\_,_|_|_|_|
//
// /////////////////////////////////////////////////////////////////////////////
func buildBernoulli(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	prob := params["p"]
	if prob < 0 || prob > 1 {
		return nil, paramError("p", "0 <= p <= 1", prob)
	}
	return distuv.Bernoulli{
		P:   prob,
		Src: src,
	}, nil
}

func buildBinomial(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	trials := params["n"]
	prob := params["p"]
	if trials < 0 || trials != math.Trunc(trials) {
		return nil, paramError("n", "non-negative integer", trials)
	}
	if prob < 0 || prob > 1 {
		return nil, paramError("p", "0 <= p <= 1", prob)
	}
	return distuv.Binomial{
		N:   trials,
		P:   prob,
		Src: src,
	}, nil
}
