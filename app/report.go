package app

import (
	"encoding/json"
	"time"

	"bmireport/adapters/stats/senses"
	"bmireport/domain/bmi"
	"bmireport/domain/core"
	"bmireport/internal/profiling"
)

// Correlation is one association measure between BMI and the stated Index
type Correlation struct {
	Method      string  `json:"method"`
	Coefficient float64 `json:"coefficient"` // full precision
	Rounded     float64 `json:"rounded"`     // display only
	PValue      float64 `json:"p_value"`
	SampleSize  int     `json:"sample_size"`
	Signal      string  `json:"signal"`
	Description string  `json:"description"`
	Defined     bool    `json:"defined"`
	Error       string  `json:"error,omitempty"`
}

// MarshalJSON encodes undefined coefficients as null
func (c Correlation) MarshalJSON() ([]byte, error) {
	type alias Correlation
	return json.Marshal(struct {
		alias
		Coefficient *float64 `json:"coefficient"`
		Rounded     *float64 `json:"rounded"`
		PValue      *float64 `json:"p_value"`
	}{
		alias:       alias(c),
		Coefficient: core.NullableFloat(c.Coefficient),
		Rounded:     core.NullableFloat(c.Rounded),
		PValue:      core.NullableFloat(c.PValue),
	})
}

func correlationFrom(r senses.SenseResult, err error) Correlation {
	c := Correlation{
		Method:      r.SenseName,
		Coefficient: r.EffectSize,
		Rounded:     r.Rounded,
		PValue:      r.PValue,
		SampleSize:  r.SampleSize,
		Signal:      r.Signal,
		Description: r.Description,
		Defined:     err == nil,
	}
	if err != nil {
		c.Error = err.Error()
	}
	return c
}

// Report is everything the presentation layer renders for one dataset
type Report struct {
	ID          core.ReportID  `json:"id"`
	DatasetName string         `json:"dataset_name"`
	TableHash   core.TableHash `json:"table_hash"`
	GeneratedAt time.Time      `json:"generated_at"`

	Rows    []bmi.AnnotatedRecord `json:"-"`
	Preview []bmi.AnnotatedRecord `json:"preview"`

	Agreement bmi.Agreement `json:"agreement"`

	// Correlations over all valid rows; Spearman is always first
	Correlations []Correlation `json:"correlations"`
	// Spearman restricted to rows whose stated Index agrees with the thresholds
	IncludedSpearman Correlation `json:"included_spearman"`

	// BMI over all valid rows, then per computed and per stated category
	ProfileAll       profiling.ColumnProfile     `json:"profile_all"`
	ProfilesComputed []profiling.CategoryProfile `json:"profiles_computed"`
	ProfilesStated   []profiling.CategoryProfile `json:"profiles_stated"`

	Thresholds []bmi.Threshold        `json:"thresholds"`
	GridRange  bmi.GridRange          `json:"grid_range"`
	Grid       []bmi.GridCell         `json:"-"`
	GridCounts [bmi.NumCategories]int `json:"grid_counts"`
	Warnings   []string               `json:"warnings,omitempty"`
}

// Spearman returns the rank correlation between BMI and the stated Index
func (r *Report) Spearman() Correlation {
	for _, c := range r.Correlations {
		if c.Method == "spearman" {
			return c
		}
	}
	return Correlation{Method: "spearman"}
}

// Options controls what BuildReport computes
type Options struct {
	Grid        bmi.GridRange
	PreviewRows int // rows in Report.Preview; zero means no preview
	SkipGrid    bool
}

// DefaultOptions are ten preview rows and the
// 140..199 cm x 50..159 kg grid
func DefaultOptions() Options {
	return Options{
		Grid:        bmi.DefaultGridRange(),
		PreviewRows: 10,
	}
}
