package profiling

import (
	"bmireport/domain/bmi"
)

// CategoryProfiler builds per-category BMI profiles of an annotated table
type CategoryProfiler struct {
	analyzer *DistributionAnalyzer
}

// NewCategoryProfiler creates a new category profiler
func NewCategoryProfiler() *CategoryProfiler {
	return &CategoryProfiler{analyzer: NewDistributionAnalyzer()}
}

// ProfileColumn profiles an arbitrary numeric column
func (p *CategoryProfiler) ProfileColumn(data []float64) (ColumnProfile, error) {
	return p.analyzer.AnalyzeDistribution(data)
}

// ProfileByCategory groups the valid rows by category and profiles their BMI.
// When byStated is true the stated Index is used, otherwise the computed one.
// Categories without rows are omitted.
func (p *CategoryProfiler) ProfileByCategory(rows []bmi.AnnotatedRecord, byStated bool) ([]CategoryProfile, error) {
	groups := make([][]float64, bmi.NumCategories)
	for _, r := range rows {
		if !r.Valid {
			continue
		}
		cat := r.Computed
		if byStated {
			cat = bmi.Category(r.Index)
		}
		if !cat.Valid() {
			continue
		}
		groups[cat] = append(groups[cat], r.BMI)
	}

	profiles := make([]CategoryProfile, 0, bmi.NumCategories)
	for i, values := range groups {
		if len(values) == 0 {
			continue
		}
		profile, err := p.analyzer.AnalyzeDistribution(values)
		if err != nil {
			return nil, err
		}
		cat := bmi.Category(i)
		profiles = append(profiles, CategoryProfile{
			Category: int(cat),
			Label:    cat.Label(),
			Profile:  profile,
		})
	}
	return profiles, nil
}
