package bmi

import (
	"fmt"

	"bmireport/domain/core"
)

// Validate checks that the range is non-empty and strictly positive.
func (g GridRange) Validate() error {
	if g.HeightMin <= 0 || g.WeightMin <= 0 {
		return fmt.Errorf("%w: bounds must be positive (height from %d, weight from %d)",
			core.ErrInvalidGridRange, g.HeightMin, g.WeightMin)
	}
	if g.HeightMax < g.HeightMin {
		return fmt.Errorf("%w: height %d..%d", core.ErrInvalidGridRange, g.HeightMin, g.HeightMax)
	}
	if g.WeightMax < g.WeightMin {
		return fmt.Errorf("%w: weight %d..%d", core.ErrInvalidGridRange, g.WeightMin, g.WeightMax)
	}
	return nil
}

// BuildGrid enumerates the Cartesian product of the height and weight ranges in
// height-major order, classifying each cell with the same rule as real records.
func BuildGrid(g GridRange) ([]GridCell, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	cells := make([]GridCell, 0, g.Size())
	for h := g.HeightMin; h <= g.HeightMax; h++ {
		for w := g.WeightMin; w <= g.WeightMax; w++ {
			m := DeriveMetric(float64(h), float64(w))
			if !m.Valid {
				return nil, m.Err
			}
			cat, err := Classify(m.Value)
			if err != nil {
				return nil, err
			}
			cells = append(cells, GridCell{Height: h, Weight: w, BMI: m.Value, Index: cat})
		}
	}
	return cells, nil
}

// CategoryCounts tallies grid cells per category.
func CategoryCounts(cells []GridCell) [NumCategories]int {
	var counts [NumCategories]int
	for _, c := range cells {
		if c.Index.Valid() {
			counts[c.Index]++
		}
	}
	return counts
}
