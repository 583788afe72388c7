package bmi

import (
	"encoding/json"

	"bmireport/domain/core"
)

// MarshalJSON writes an invalid row's NaN BMI as null.
func (a AnnotatedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Gender   string   `json:"gender"`
		Height   *float64 `json:"height"`
		Weight   *float64 `json:"weight"`
		Index    int      `json:"index"`
		BMI      *float64 `json:"bmi"`
		Computed *int     `json:"computed_index"`
		Flag     Flag     `json:"flag"`
		Valid    bool     `json:"valid"`
		Reason   string   `json:"reason,omitempty"`
	}{
		Gender:   a.Gender,
		Height:   core.NullableFloat(a.Height),
		Weight:   core.NullableFloat(a.Weight),
		Index:    a.Index,
		BMI:      core.NullableFloat(a.BMI),
		Computed: a.computedOrNil(),
		Flag:     a.Flag,
		Valid:    a.Valid,
		Reason:   a.Reason,
	})
}

func (a AnnotatedRecord) computedOrNil() *int {
	if !finitePositive(a.BMI) {
		return nil
	}
	c := int(a.Computed)
	return &c
}

// MarshalJSON writes the open upper bound of the last category as null.
func (t Threshold) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UpperBound *float64 `json:"upper_bound"`
		Category   int      `json:"category"`
		Label      string   `json:"label"`
	}{
		UpperBound: core.NullableFloat(t.UpperBound),
		Category:   int(t.Category),
		Label:      t.Category.Label(),
	})
}
