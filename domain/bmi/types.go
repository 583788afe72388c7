package bmi

import (
	"fmt"
	"math"
)

// Record is one observed subject as supplied by the loader.
type Record struct {
	Gender string  `json:"gender"`
	Height float64 `json:"height"` // cm
	Weight float64 `json:"weight"` // kg
	Index  int     `json:"index"`  // stated category, 0..5
}

// Category is the ordinal BMI class in 0..5.
type Category int

const (
	ExtremelyWeak Category = iota
	Weak
	Normal
	Overweight
	Obesity
	ExtremelyObesity
)

// NumCategories is the size of the ordinal scale.
const NumCategories = 6

var categoryLabels = [NumCategories]string{
	"Extremely Weak",
	"Weak",
	"Normal",
	"Overweight",
	"Obesity",
	"Extremely Obesity",
}

// Label returns the human-readable name of the category.
func (c Category) Label() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

func (c Category) String() string { return c.Label() }

// Valid reports whether c lies on the 0..5 scale.
func (c Category) Valid() bool {
	return c >= ExtremelyWeak && c <= ExtremelyObesity
}

// Categories returns every category in ascending order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Measurement is the per-row result of deriving the metric: either a value or
// the reason it could not be computed.
type Measurement struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
	Err   error   `json:"-"`
}

// Reason returns the failure text, or "" for a valid measurement.
func (m Measurement) Reason() string {
	if m.Err == nil {
		return ""
	}
	return m.Err.Error()
}

// Flag is the consistency tag attached to an annotated record.
type Flag string

const (
	FlagIncluded Flag = "Included"
	FlagExcluded Flag = "Excluded"
	FlagInvalid  Flag = "Invalid"
)

// AnnotatedRecord is a Record augmented with the derived columns.
type AnnotatedRecord struct {
	Record
	BMI      float64  `json:"bmi"`
	Computed Category `json:"computed_index"`
	Flag     Flag     `json:"flag"`
	Valid    bool     `json:"valid"`
	Reason   string   `json:"reason,omitempty"`
}

// GridCell is one point of the synthetic mapping grid.
type GridCell struct {
	Height int      `json:"height"`
	Weight int      `json:"weight"`
	BMI    float64  `json:"bmi"`
	Index  Category `json:"index"`
}

// GridRange bounds the mapping grid. Both ranges are inclusive integer steps.
type GridRange struct {
	HeightMin int `json:"height_min"`
	HeightMax int `json:"height_max"`
	WeightMin int `json:"weight_min"`
	WeightMax int `json:"weight_max"`
}

// DefaultGridRange covers heights 140..199 cm and weights 50..159 kg.
func DefaultGridRange() GridRange {
	return GridRange{HeightMin: 140, HeightMax: 199, WeightMin: 50, WeightMax: 159}
}

// Size returns the number of cells the range produces.
func (g GridRange) Size() int {
	if g.HeightMax < g.HeightMin || g.WeightMax < g.WeightMin {
		return 0
	}
	return (g.HeightMax - g.HeightMin + 1) * (g.WeightMax - g.WeightMin + 1)
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
