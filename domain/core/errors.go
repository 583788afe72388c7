package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Per-row errors, recovered locally and surfaced on the row
	ErrInvalidMeasurement   = errors.New("invalid measurement")
	ErrUnclassifiableMetric = errors.New("unclassifiable metric")
	ErrInvalidCategory      = errors.New("stated category out of range")

	// Table-level errors, fatal for the invocation
	ErrEmptyInput        = errors.New("empty input")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDegenerateInput   = errors.New("degenerate input: zero variance")
	ErrInvalidGridRange  = errors.New("invalid grid range")
	ErrNonFiniteValue    = errors.New("non-finite value")

	// Loader errors
	ErrMissingColumn     = errors.New("missing required column")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInsufficientData  = errors.New("insufficient data for analysis")
	ErrUnknownChart      = errors.New("unknown chart")
)

// Error constructors with context
func NewInvalidMeasurementError(heightCM, weightKG float64) error {
	return fmt.Errorf("%w: height=%v cm weight=%v kg", ErrInvalidMeasurement, heightCM, weightKG)
}

func NewUnclassifiableMetricError(metric float64) error {
	return fmt.Errorf("%w: %v", ErrUnclassifiableMetric, metric)
}

func NewDimensionMismatchError(lenX, lenY int) error {
	return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, lenX, lenY)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// IsInputError reports whether err rejects the table as a whole rather than a
// single row.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrInvalidGridRange) ||
		errors.Is(err, ErrNonFiniteValue) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrUnsupportedFormat)
}
