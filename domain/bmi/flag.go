package bmi

import (
	"fmt"

	"bmireport/domain/core"
)

// FlagFor compares the stated category against the computed one.
func FlagFor(stated, computed Category) Flag {
	if stated == computed {
		return FlagIncluded
	}
	return FlagExcluded
}

// Annotate derives BMI, the computed category and the consistency flag for every
// record. Rows whose metric cannot be derived or classified, or whose stated
// category is off the 0..5 scale, are kept and tagged FlagInvalid with the
// reason; the input slice is never modified.
func Annotate(records []Record) []AnnotatedRecord {
	out := make([]AnnotatedRecord, len(records))
	for i, r := range records {
		ar := AnnotatedRecord{Record: r}

		m := DeriveMetric(r.Height, r.Weight)
		ar.BMI = m.Value
		if !m.Valid {
			ar.Flag = FlagInvalid
			ar.Reason = m.Reason()
			out[i] = ar
			continue
		}

		computed, err := Classify(m.Value)
		if err != nil {
			ar.Flag = FlagInvalid
			ar.Reason = err.Error()
			out[i] = ar
			continue
		}

		ar.Computed = computed
		stated := Category(r.Index)
		if !stated.Valid() {
			ar.Flag = FlagInvalid
			ar.Reason = fmt.Errorf("%w: %d", core.ErrInvalidCategory, r.Index).Error()
			out[i] = ar
			continue
		}

		ar.Valid = true
		ar.Flag = FlagFor(stated, computed)
		out[i] = ar
	}
	return out
}

// ValidRows returns the annotated rows that take part in aggregate statistics.
func ValidRows(rows []AnnotatedRecord) []AnnotatedRecord {
	out := make([]AnnotatedRecord, 0, len(rows))
	for _, r := range rows {
		if r.Valid {
			out = append(out, r)
		}
	}
	return out
}

// Agreement counts rows per flag.
type Agreement struct {
	Total         int     `json:"total"`
	Included      int     `json:"included"`
	Excluded      int     `json:"excluded"`
	Invalid       int     `json:"invalid"`
	InclusionRate float64 `json:"inclusion_rate"` // included / (included + excluded)
}

// Summarize tallies the flags of an annotated table.
func Summarize(rows []AnnotatedRecord) Agreement {
	a := Agreement{Total: len(rows)}
	for _, r := range rows {
		switch r.Flag {
		case FlagIncluded:
			a.Included++
		case FlagExcluded:
			a.Excluded++
		default:
			a.Invalid++
		}
	}
	if valid := a.Included + a.Excluded; valid > 0 {
		a.InclusionRate = float64(a.Included) / float64(valid)
	}
	return a
}
