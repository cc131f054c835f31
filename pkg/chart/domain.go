package chart

import "math"

const (
	defaultTickCount = 5
	niceStepTwo      = 2
	niceStepThree    = 3
	niceStepFive     = 5
	niceStepTen      = 10
	tickEpsilon      = 1e-9

	rendererRoundOne   = 1.5
	rendererRoundTwo   = 2.5
	rendererRoundThree = 4
	rendererRoundFive  = 7
)

// Domain is the numeric range an axis is scaled to. Auto leaves scaling to
// the renderer and ignores Min and Max.
type Domain struct {
	Min  float64
	Max  float64
	Auto bool
}

// DomainOptions are the axis overrides a chart accepts.
type DomainOptions struct {
	AutoMinValue bool
	MinValue     *float64
	MaxValue     *float64
	Stack        bool
}

// ResolveYDomain computes the value axis domain. Explicit bounds always win;
// otherwise the minimum is 0 (or the data minimum when it is negative, or
// always with AutoMinValue) and the maximum is the data maximum. It reports
// false when a bound is needed from data and there is no numeric data. That
// includes a single explicit bound: without data the other bound is unknown,
// so the given one is dropped and the chart shows its no-data state.
// A resolved min greater than max degrades to an auto domain.
func ResolveYDomain(opts DomainOptions, data []Record, categories []string) (Domain, bool) {
	if opts.MinValue != nil && opts.MaxValue != nil {
		return checked(*opts.MinValue, *opts.MaxValue), true
	}

	lo, hi, ok := Extent(data, categories, opts.Stack)
	if !ok {
		return Domain{}, false
	}

	minV := lo
	if !opts.AutoMinValue && lo >= 0 {
		minV = 0
	}

	if opts.MinValue != nil {
		minV = *opts.MinValue
	}

	maxV := hi
	if opts.MaxValue != nil {
		maxV = *opts.MaxValue
	}

	return checked(minV, maxV), true
}

func checked(minV, maxV float64) Domain {
	if math.IsNaN(minV) || math.IsNaN(maxV) || minV > maxV {
		return Domain{Auto: true}
	}

	return Domain{Min: minV, Max: maxV}
}

// Extent returns the smallest and largest plotted values. Stacked charts use
// the running sums at each index, which is what the stacked areas reach.
func Extent(data []Record, categories []string, stack bool) (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := false

	for _, rec := range data {
		sum := 0.0

		for _, category := range categories {
			v, ok := rec.Number(category)
			if !ok {
				continue
			}

			if stack {
				sum += v
				v = sum
			}

			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			found = true
		}
	}

	if !found {
		return 0, 0, false
	}

	return lo, hi, true
}

// NiceTicks returns evenly spaced tick values from d.Min up to d.Max using a
// 1-2-5 step. With integerOnly the step is at least 1.
func NiceTicks(d Domain, count int, integerOnly bool) []float64 {
	if d.Auto {
		return nil
	}

	if count <= 0 {
		count = defaultTickCount
	}

	span := d.Max - d.Min
	if span <= 0 {
		return []float64{d.Min}
	}

	step := niceStep(span / float64(count))
	if integerOnly {
		step = math.Max(1, math.Ceil(step-tickEpsilon))
	}

	ticks := make([]float64, 0, count+1)

	for v := d.Min; v <= d.Max+step*tickEpsilon; v += step {
		ticks = append(ticks, roundTo(v, step))
	}

	return ticks
}

// RendererTicks predicts the ticks echarts draws when it scales a value axis
// on its own: the extent always includes zero, the interval is a 1-2-3-5
// multiple of span/count (at least 1 with integerOnly) and the ticks run
// over the extent widened to whole intervals.
func RendererTicks(lo, hi float64, count int, integerOnly bool) []float64 {
	lo, hi = math.Min(lo, 0), math.Max(hi, 0)

	if count <= 0 {
		count = defaultTickCount
	}

	span := hi - lo
	if span <= 0 {
		return []float64{lo}
	}

	step := rendererStep(span / float64(count))
	if integerOnly && step < 1 {
		step = 1
	}

	first := math.Floor(lo/step+tickEpsilon) * step
	last := math.Ceil(hi/step-tickEpsilon) * step

	ticks := make([]float64, 0, count+2)

	for v := first; v <= last+step*tickEpsilon; v += step {
		ticks = append(ticks, roundTo(v, step))
	}

	return ticks
}

// rendererStep rounds raw to 1, 2, 3, 5 or 10 times its power of ten.
func rendererStep(raw float64) float64 {
	magnitude := math.Pow(niceStepTen, math.Floor(math.Log10(raw)))
	f := raw / magnitude

	switch {
	case f < rendererRoundOne:
		return magnitude
	case f < rendererRoundTwo:
		return niceStepTwo * magnitude
	case f < rendererRoundThree:
		return niceStepThree * magnitude
	case f < rendererRoundFive:
		return niceStepFive * magnitude
	default:
		return niceStepTen * magnitude
	}
}

func niceStep(raw float64) float64 {
	magnitude := math.Pow(niceStepTen, math.Floor(math.Log10(raw)))
	residual := raw/magnitude - tickEpsilon

	switch {
	case residual > niceStepFive:
		return niceStepTen * magnitude
	case residual > niceStepTwo:
		return niceStepFive * magnitude
	case residual > 1:
		return niceStepTwo * magnitude
	default:
		return magnitude
	}
}

// roundTo trims accumulated float error to the precision of step.
func roundTo(v, step float64) float64 {
	decimals := math.Max(0, -math.Floor(math.Log10(step))+1)
	scale := math.Pow(niceStepTen, decimals)

	return math.Round(v*scale) / scale
}
