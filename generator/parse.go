package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reParams = regexp.MustCompile(`[()]`)

// ParseDistribution parses a distribution expression. Supported forms:
//
//	20                    constant
//	geom(p=0.2)           discrete family
//	beta(a=0.8, b=0.8)    continuous family
//
// The kind of a named family comes from the registry.
func ParseDistribution(expr string) (Distribution, error) {
	trimmed := strings.TrimSpace(expr)
	if len(trimmed) <= 0 {
		return Distribution{}, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	var constVal float64
	if parseFloat(trimmed, &constVal) == nil {
		return Constant(constVal), nil
	}

	// NAME(args) always splits into [NAME, args, ""]
	exprParts := reParams.Split(trimmed, -1)
	if len(exprParts) != 3 || len(strings.TrimSpace(exprParts[2])) != 0 {
		return Distribution{}, fmt.Errorf("%w: %s", ErrInvalidExpression, expr)
	}
	name := canonicalName(exprParts[0])
	fam, famExists := samplerMap[name]
	if !famExists {
		return Distribution{}, fmt.Errorf("%w: unsupported family %q", ErrInvalidDistributionType, strings.TrimSpace(exprParts[0]))
	}
	params := make(map[string]float64)
	args := strings.TrimSpace(exprParts[1])
	if len(args) != 0 {
		for _, eachArg := range strings.Split(args, ",") {
			kv := strings.SplitN(eachArg, "=", 2)
			if len(kv) != 2 {
				return Distribution{}, fmt.Errorf("%w: parameter %q must be key=value in %s", ErrInvalidExpression, strings.TrimSpace(eachArg), expr)
			}
			key := strings.TrimSpace(kv[0])
			if len(key) <= 0 {
				return Distribution{}, fmt.Errorf("%w: empty parameter name in %s", ErrInvalidExpression, expr)
			}
			if _, dup := params[key]; dup {
				return Distribution{}, fmt.Errorf("%w: duplicate parameter %q in %s", ErrInvalidExpression, key, expr)
			}
			var val float64
			parseErr := parseFloat(kv[1], &val)
			if parseErr != nil {
				return Distribution{}, fmt.Errorf("%w: parameter %q: %s", ErrInvalidExpression, key, parseErr.Error())
			}
			params[key] = val
		}
	}
	return Distribution{Kind: fam.kind, Name: name, Params: params}, nil
}

// MustParseDistribution is ParseDistribution for package level defaults and
// tests. It panics on error.
func MustParseDistribution(expr string) Distribution {
	dist, err := ParseDistribution(expr)
	if err != nil {
		panic(err)
	}
	return dist
}

func parseFloat(strVal string, target *float64) error {
	trimmedVal := strings.TrimSpace(strVal)
	parseVal, parseValErr := strconv.ParseFloat(trimmedVal, 64)
	if parseValErr != nil {
		return parseValErr
	}
	*target = parseVal
	return nil
}
