package profiling

import (
	"encoding/json"

	"bmireport/domain/core"
)

// SummaryStats holds the descriptive statistics of one numeric column
type SummaryStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// DistributionStats describes the shape of a column
type DistributionStats struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
	Outliers int     `json:"outliers"` // IQR rule
}

// MarshalJSON writes an untestable normality p-value (small samples) as null
func (d DistributionStats) MarshalJSON() ([]byte, error) {
	type alias DistributionStats
	return json.Marshal(struct {
		alias
		NormalP *float64 `json:"normal_p"`
	}{
		alias:   alias(d),
		NormalP: core.NullableFloat(d.NormalP),
	})
}

// ColumnProfile combines summary and shape for one column
type ColumnProfile struct {
	Summary      SummaryStats      `json:"summary"`
	Distribution DistributionStats `json:"distribution"`
}

// CategoryProfile is the BMI profile of the rows in one category
type CategoryProfile struct {
	Category int           `json:"category"`
	Label    string        `json:"label"`
	Profile  ColumnProfile `json:"profile"`
}
