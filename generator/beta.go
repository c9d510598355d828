package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
// ___      _
// | _ ) ___| |_ __ _
// | _ \/ -_)  _/ _` |
// |___/\___|\__\__,_|
//
// /////////////////////////////////////////////////////////////////////////////
func buildBeta(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	alpha := params["a"]
	beta := params["b"]
	if alpha <= 0 {
		return nil, paramError("a", "a > 0", alpha)
	}
	if beta <= 0 {
		return nil, paramError("b", "b > 0", beta)
	}
	return distuv.Beta{
		Alpha: alpha,
		Beta:  beta,
		Src:   src,
	}, nil
}
