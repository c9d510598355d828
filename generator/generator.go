package generator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInvalidDistributionType is returned when a Variable is built from
	// something that is neither a numeric constant nor a registered discrete
	// or continuous family.
	ErrInvalidDistributionType = errors.New("invalid distribution type")
	// ErrInvalidParameter is returned for missing, unknown or out of domain
	// distribution parameters.
	ErrInvalidParameter = errors.New("invalid distribution parameter")
	// ErrInvalidExpression is returned when a distribution expression can't
	// be parsed.
	ErrInvalidExpression = errors.New("invalid distribution expression")
)

// Kind tags the Distribution variant.
type Kind int

const (
	KindInvalid Kind = iota
	KindConstant
	KindDiscrete
	KindContinuous
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindDiscrete:
		return "discrete"
	case KindContinuous:
		return "continuous"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// /////////////////////////////////////////////////////////////////////////////
// ___  _    _       _ _         _   _
// |   \(_)__| |_ _ _(_) |__ _  _| |_(_)___ _ _
// | |) | (_-<  _| '_| | '_ \ || |  _| / _ \ ' \
// |___/|_/__/\__|_| |_|_.__/\_,_|\__|_\___/_||_|
//
// /////////////////////////////////////////////////////////////////////////////

// Distribution is the tagged variant {Constant(number) | Discrete(name, params)
// | Continuous(name, params)} a Variable samples from.
type Distribution struct {
	Kind   Kind
	Name   string
	Value  float64
	Params map[string]float64
}

// Constant returns a distribution that always yields v.
func Constant(v float64) Distribution {
	return Distribution{Kind: KindConstant, Value: v}
}

// Discrete returns a named discrete family bound to params.
func Discrete(name string, params map[string]float64) Distribution {
	return Distribution{Kind: KindDiscrete, Name: name, Params: copyParams(params)}
}

// Continuous returns a named continuous family bound to params.
func Continuous(name string, params map[string]float64) Distribution {
	return Distribution{Kind: KindContinuous, Name: name, Params: copyParams(params)}
}

// WithParams returns a copy of d with the given parameters set, overriding
// any existing values.
func (d Distribution) WithParams(params map[string]float64) Distribution {
	merged := copyParams(d.Params)
	if merged == nil {
		merged = make(map[string]float64, len(params))
	}
	for eachKey, eachVal := range params {
		merged[eachKey] = eachVal
	}
	d.Params = merged
	return d
}

// String renders the canonical expression accepted by ParseDistribution.
func (d Distribution) String() string {
	if d.Kind == KindConstant {
		return formatFloat(d.Value)
	}
	fam, famExists := samplerMap[canonicalName(d.Name)]
	var ordered []string
	if famExists {
		ordered = fam.paramOrder()
	}
	seen := make(map[string]bool, len(d.Params))
	parts := make([]string, 0, len(d.Params))
	for _, eachKey := range ordered {
		if val, ok := d.Params[eachKey]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", eachKey, formatFloat(val)))
			seen[eachKey] = true
		}
	}
	// Anything the registry doesn't know about goes last, sorted
	rest := make([]string, 0)
	for eachKey := range d.Params {
		if !seen[eachKey] {
			rest = append(rest, eachKey)
		}
	}
	sort.Strings(rest)
	for _, eachKey := range rest {
		parts = append(parts, fmt.Sprintf("%s=%s", eachKey, formatFloat(d.Params[eachKey])))
	}
	return fmt.Sprintf("%s(%s)", d.Name, strings.Join(parts, ", "))
}

// /////////////////////////////////////////////////////////////////////////////
// __   __       _      _    _
// \ \ / /_ _ _ _(_)__ _| |__| |___
//  \ V / _` | '_| / _` | '_ \ / -_)
//   \_/\__,_|_| |_\__,_|_.__/_\___|
//
// /////////////////////////////////////////////////////////////////////////////

// Variable produces one scalar sample per Get call. It carries no state
// between calls other than the random source it consumes.
type Variable struct {
	dist   Distribution
	rander distuv.Rander
	loc    float64
	scale  float64
}

// NewVariable validates dist and binds it to src. A nil src is replaced by
// a time seeded source.
func NewVariable(dist Distribution, src rand.Source) (*Variable, error) {
	switch dist.Kind {
	case KindConstant:
		if math.IsNaN(dist.Value) || math.IsInf(dist.Value, 0) {
			return nil, fmt.Errorf("%w: constant must be finite, got %v", ErrInvalidParameter, dist.Value)
		}
		return &Variable{dist: dist, scale: 1}, nil
	case KindDiscrete, KindContinuous:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidDistributionType, dist.Kind)
	}

	name := canonicalName(dist.Name)
	fam, famExists := samplerMap[name]
	if !famExists {
		return nil, fmt.Errorf("%w: unsupported %s family %q. Supported families: %v",
			ErrInvalidDistributionType,
			dist.Kind,
			dist.Name,
			familyNames(dist.Kind))
	}
	if fam.kind != dist.Kind {
		return nil, fmt.Errorf("%w: %q is a %s family, not %s",
			ErrInvalidDistributionType,
			dist.Name,
			fam.kind,
			dist.Kind)
	}
	checkErr := fam.checkParams(name, dist.Params)
	if checkErr != nil {
		return nil, checkErr
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	rander, randerErr := fam.build(dist.Params, src)
	if randerErr != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidParameter, name, randerErr.Error())
	}

	loc, scale := 0.0, 1.0
	if val, ok := dist.Params["loc"]; ok {
		loc = val
	}
	if val, ok := dist.Params["scale"]; ok {
		if !(val > 0) {
			return nil, fmt.Errorf("%w: %s: scale must be > 0, got %v", ErrInvalidParameter, name, val)
		}
		scale = val
	}
	return &Variable{
		dist:   dist,
		rander: rander,
		loc:    loc,
		scale:  scale,
	}, nil
}

// Get returns the constant, or one independent draw from the distribution.
func (v *Variable) Get() float64 {
	if v.dist.Kind == KindConstant {
		return v.dist.Value
	}
	return v.loc + v.scale*v.rander.Rand()
}

// Name returns the canonical distribution expression.
func (v *Variable) Name() string {
	return v.dist.String()
}

// Distribution returns the bound distribution.
func (v *Variable) Distribution() Distribution {
	return v.dist
}

// /////////////////////////////////////////////////////////////////////////////
// registry
// /////////////////////////////////////////////////////////////////////////////

type buildFunc func(params map[string]float64, src rand.Source) (distuv.Rander, error)

type family struct {
	kind     Kind
	required []string
	build    buildFunc
}

// The implicit location/scale parameters every family of a kind accepts
func (f *family) implicit() []string {
	if f.kind == KindContinuous {
		return []string{"loc", "scale"}
	}
	return []string{"loc"}
}

func (f *family) paramOrder() []string {
	order := make([]string, 0, len(f.required)+2)
	order = append(order, f.required...)
	return append(order, f.implicit()...)
}

func (f *family) checkParams(name string, params map[string]float64) error {
	for _, eachKey := range f.required {
		if _, ok := params[eachKey]; !ok {
			return fmt.Errorf("%w: %s requires parameter %q", ErrInvalidParameter, name, eachKey)
		}
	}
	allowed := f.paramOrder()
	for eachKey, eachVal := range params {
		known := false
		for _, eachAllowed := range allowed {
			if eachKey == eachAllowed {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %s does not accept parameter %q. Accepted: %v",
				ErrInvalidParameter,
				name,
				eachKey,
				allowed)
		}
		if math.IsNaN(eachVal) || math.IsInf(eachVal, 0) {
			return fmt.Errorf("%w: %s parameter %q must be finite", ErrInvalidParameter, name, eachKey)
		}
	}
	return nil
}

var samplerMap map[string]*family

var aliases = map[string]string{
	"geometric":   "geom",
	"normal":      "norm",
	"exponential": "expon",
	"lognormal":   "lognorm",
	"triangle":    "triang",
	"weibull":     "weibull_min",
}

func init() {
	// The map of supported families. Parameter names follow the usual
	// statistics library conventions so scenario definitions stay portable.
	samplerMap = map[string]*family{
		"randint":     {kind: KindDiscrete, required: []string{"low", "high"}, build: buildRandInt},
		"geom":        {kind: KindDiscrete, required: []string{"p"}, build: buildGeometric},
		"poisson":     {kind: KindDiscrete, required: []string{"mu"}, build: buildPoisson},
		"bernoulli":   {kind: KindDiscrete, required: []string{"p"}, build: buildBernoulli},
		"binomial":    {kind: KindDiscrete, required: []string{"n", "p"}, build: buildBinomial},
		"uniform":     {kind: KindContinuous, build: buildUniform},
		"beta":        {kind: KindContinuous, required: []string{"a", "b"}, build: buildBeta},
		"norm":        {kind: KindContinuous, build: buildNormal},
		"expon":       {kind: KindContinuous, build: buildExponential},
		"gamma":       {kind: KindContinuous, required: []string{"a"}, build: buildGamma},
		"lognorm":     {kind: KindContinuous, required: []string{"s"}, build: buildLogNormal},
		"pareto":      {kind: KindContinuous, required: []string{"b"}, build: buildPareto},
		"triang":      {kind: KindContinuous, required: []string{"c"}, build: buildTriangle},
		"weibull_min": {kind: KindContinuous, required: []string{"c"}, build: buildWeibull},
	}
}

// FamilyInfo describes a registered distribution family.
type FamilyInfo struct {
	Name     string
	Kind     Kind
	Required []string
	Optional []string
}

// Families returns the registered families sorted by name.
func Families() []FamilyInfo {
	infos := make([]FamilyInfo, 0, len(samplerMap))
	for eachName, eachFamily := range samplerMap {
		infos = append(infos, FamilyInfo{
			Name:     eachName,
			Kind:     eachFamily.kind,
			Required: append([]string{}, eachFamily.required...),
			Optional: eachFamily.implicit(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

func familyNames(kind Kind) []string {
	names := []string{}
	for eachName, eachFamily := range samplerMap {
		if eachFamily.kind == kind {
			names = append(names, eachName)
		}
	}
	sort.Strings(names)
	return names
}

func canonicalName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

func copyParams(params map[string]float64) map[string]float64 {
	if params == nil {
		return nil
	}
	dup := make(map[string]float64, len(params))
	for eachKey, eachVal := range params {
		dup[eachKey] = eachVal
	}
	return dup
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

func paramError(name string, constraint string, val float64) error {
	return fmt.Errorf("%s must satisfy %s, got %v", name, constraint, val)
}
