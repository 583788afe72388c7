package bmi

import (
	"math"

	"bmireport/domain/core"
)

// Threshold maps every metric up to and including UpperBound to Category.
type Threshold struct {
	UpperBound float64
	Category   Category
}

// thresholds is evaluated in order; the first bound the metric does not exceed
// wins. Bounds are strictly increasing and the last one is +Inf, so the table is
// contiguous and exhaustive over (0, +Inf).
var thresholds = []Threshold{
	{UpperBound: 15, Category: ExtremelyWeak},
	{UpperBound: 20, Category: Weak},
	{UpperBound: 25, Category: Normal},
	{UpperBound: 30, Category: Overweight},
	{UpperBound: 40, Category: Obesity},
	{UpperBound: math.Inf(1), Category: ExtremelyObesity},
}

// Thresholds returns a copy of the classification table.
func Thresholds() []Threshold {
	out := make([]Threshold, len(thresholds))
	copy(out, thresholds)
	return out
}

// Classify maps a metric to its category. NaN, infinite and non-positive values
// are rejected with ErrUnclassifiableMetric.
func Classify(metric float64) (Category, error) {
	if !finitePositive(metric) {
		return 0, core.NewUnclassifiableMetricError(metric)
	}
	for _, t := range thresholds {
		if metric <= t.UpperBound {
			return t.Category, nil
		}
	}
	// unreachable while the last bound is +Inf
	return 0, core.NewUnclassifiableMetricError(metric)
}

// ClassifyAll applies Classify element-wise. errs[i] is non-nil exactly when
// metrics[i] could not be classified; cats[i] is then meaningless.
func ClassifyAll(metrics []float64) (cats []Category, errs []error) {
	cats = make([]Category, len(metrics))
	errs = make([]error, len(metrics))
	for i, m := range metrics {
		cats[i], errs[i] = Classify(m)
	}
	return cats, errs
}

// Bounds returns the half-open interval (lower, upper] that maps to c.
// Category 0 has no lower bound and the last category has no upper bound.
func Bounds(c Category) (lower, upper float64, ok bool) {
	for i, t := range thresholds {
		if t.Category != c {
			continue
		}
		lower = math.Inf(-1)
		if i > 0 {
			lower = thresholds[i-1].UpperBound
		}
		return lower, t.UpperBound, true
	}
	return 0, 0, false
}
