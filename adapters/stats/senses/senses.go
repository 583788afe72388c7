package senses

import (
	"context"
	"errors"
	"fmt"
	"math"

	"bmireport/domain/core"
)

// DisplayDecimals is the rounding applied to coefficients shown to readers.
// Internal computation always keeps full precision.
const DisplayDecimals = 4

// SenseResult represents the output of a single statistical sense
type SenseResult struct {
	SenseName   string                 `json:"sense_name"`
	EffectSize  float64                `json:"effect_size"`  // full precision coefficient
	Rounded     float64                `json:"rounded"`      // EffectSize rounded for display
	PValue      float64                `json:"p_value"`
	SampleSize  int                    `json:"sample_size"`
	Confidence  float64                `json:"confidence"`  // 0-1 confidence score
	Signal      string                 `json:"signal"`      // "weak", "moderate", "strong", "very_strong"
	Description string                 `json:"description"` // Human-readable explanation
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Err         error                  `json:"-"` // set when the coefficient is undefined
}

// StatisticalSense defines the interface for each association measure
type StatisticalSense interface {
	Name() string
	Description() string
	Analyze(ctx context.Context, x, y []float64, varX, varY core.VariableKey) (SenseResult, error)
}

// SenseEngine runs a fixed set of senses over one pair of columns
type SenseEngine struct {
	senses []StatisticalSense
}

// NewSenseEngine creates an engine with the rank and linear correlation senses
func NewSenseEngine() *SenseEngine {
	return &SenseEngine{
		senses: []StatisticalSense{
			NewSpearmanSense(),
			NewPearsonSense(),
		},
	}
}

// AnalyzeAll runs every sense in order. A zero-variance column leaves that
// sense's coefficient undefined and is recorded in SenseResult.Err; any other
// error aborts the run since no sense can produce a meaningful result on
// malformed input.
func (e *SenseEngine) AnalyzeAll(ctx context.Context, x, y []float64, varX, varY core.VariableKey) ([]SenseResult, error) {
	if err := checkDimensions(x, y); err != nil {
		return nil, err
	}

	results := make([]SenseResult, 0, len(e.senses))
	for _, sense := range e.senses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := sense.Analyze(ctx, x, y, varX, varY)
		if err != nil && !errors.Is(err, core.ErrDegenerateInput) {
			return nil, fmt.Errorf("%s: %w", sense.Name(), err)
		}
		result.Err = err
		results = append(results, result)
	}
	return results, nil
}

// AnalyzeSingle runs a specific sense by name
func (e *SenseEngine) AnalyzeSingle(ctx context.Context, senseName string, x, y []float64, varX, varY core.VariableKey) (SenseResult, bool, error) {
	for _, sense := range e.senses {
		if sense.Name() == senseName {
			result, err := sense.Analyze(ctx, x, y, varX, varY)
			return result, true, err
		}
	}
	return SenseResult{}, false, nil
}

// ListSenses returns all available sense names
func (e *SenseEngine) ListSenses() []string {
	names := make([]string, len(e.senses))
	for i, sense := range e.senses {
		names[i] = sense.Name()
	}
	return names
}

// Helper functions for result interpretation

func checkDimensions(x, y []float64) error {
	if len(x) != len(y) {
		return core.NewDimensionMismatchError(len(x), len(y))
	}
	if len(x) == 0 {
		return core.ErrEmptyInput
	}
	return nil
}

// RoundTo rounds v to the given number of decimal digits. NaN passes through.
func RoundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// classifySignal converts a correlation coefficient to signal strength
func classifySignal(effectSize float64) string {
	absEffect := math.Abs(effectSize)
	if absEffect < 0.2 {
		return "weak"
	} else if absEffect < 0.5 {
		return "moderate"
	} else if absEffect < 0.8 {
		return "strong"
	}
	return "very_strong"
}

// calculateConfidence converts p-value to confidence score (0-1)
func calculateConfidence(pValue float64) float64 {
	if math.IsNaN(pValue) || pValue >= 1.0 {
		return 0.0
	}
	if pValue <= 0.001 {
		return 0.99
	}
	return math.Min(0.99, -math.Log10(pValue)/3.0)
}
