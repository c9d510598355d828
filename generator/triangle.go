package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
/*
  _____    _                _
  |_   _| _(_)__ _ _ _  __ _| |___
  	| || '_| / _` | ' \/ _` | / -_)
  	|_||_| |_\__,_|_||_\__, |_\___|
  	                   |___/
*/
// /////////////////////////////////////////////////////////////////////////////

// Triangle on [0, 1] with mode c.
func buildTriangle(params map[string]float64, src rand.Source) (distuv.Rander, error) {
	mode := params["c"]
	if mode < 0 || mode > 1 {
		return nil, paramError("c", "0 <= c <= 1", mode)
	}
	return distuv.NewTriangle(0, 1, mode, src), nil
}
