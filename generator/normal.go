package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
// _  _                    _
// | \| |___ _ _ _ __  __ _| |
// | .` / _ \ '_| '  \/ _` | |
// |_|\_\___/_| |_|_|_\__,_|_|
//
// /////////////////////////////////////////////////////////////////////////////

// Standard normal; mean and standard deviation come from loc and scale.
func buildNormal(_ map[string]float64, src rand.Source) (distuv.Rander, error) {
	return distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   src,
	}, nil
}

func buildLogNormal(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	sigma := params["s"]
	if sigma <= 0 {
		return nil, paramError("s", "s > 0", sigma)
	}
	return distuv.LogNormal{
		Mu:    0,
		Sigma: sigma,
		Src:   src,
	}, nil
}
