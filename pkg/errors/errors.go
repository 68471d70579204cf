// Package errors defines the structured errors and warnings shared by every
// datapipe package. Each constructor attaches a stack trace through
// cockroachdb/errors, and each type can log itself as a zerolog object.
package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const prefix = "datapipe: "

// NotFittedError is returned when a model is used before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

func (e *NotFittedError) Error() string {
	return prefix + e.ModelName + ": this model is not fitted yet. Call Fit() before using " + e.Method + "()"
}

func (e *NotFittedError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "NotFittedError").Str("model_name", e.ModelName).Str("method", e.Method)
}

// DimensionError reports a shape mismatch. Axis 0 counts rows, axis 1
// counts features.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "rows"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf(prefix+"%s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

func (e *DimensionError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "DimensionError").
		Str("operation", e.Op).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Int("expected", e.Expected).
		Int("got", e.Got)
}

// ValidationError rejects a named parameter or column.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(prefix+"validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

func (e *ValidationError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "ValidationError").
		Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value)
}

// ValueError rejects an argument whose value is out of range, such as a
// split size.
type ValueError struct {
	Op      string
	Message string
}

func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

func (e *ValueError) Error() string { return prefix + e.Op + ": " + e.Message }

// SolverError wraps a failure inside a numerical routine.
type SolverError struct {
	Op     string
	Reason string
	Err    error
}

func NewSolverError(op, reason string, err error) error {
	return errors.WithStack(&SolverError{Op: op, Reason: reason, Err: err})
}

func (e *SolverError) Error() string {
	msg := prefix + e.Op + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SolverError) Unwrap() error { return e.Err }

// DegenerateFitError is returned instead of a RankWarning when a fit runs
// with the strict rank policy. It matches ErrSingularMatrix.
type DegenerateFitError struct {
	Op       string
	Rank     int
	Features int
	Samples  int
}

func NewDegenerateFitError(op string, rank, features, samples int) error {
	return errors.WithStack(&DegenerateFitError{Op: op, Rank: rank, Features: features, Samples: samples})
}

func (e *DegenerateFitError) Error() string {
	return fmt.Sprintf(prefix+"%s: degenerate fit: design matrix has rank %d but %d features (%d samples)",
		e.Op, e.Rank, e.Features, e.Samples)
}

func (e *DegenerateFitError) Unwrap() error { return ErrSingularMatrix }

func (e *DegenerateFitError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "DegenerateFitError").
		Str("operation", e.Op).
		Int("rank", e.Rank).
		Int("features", e.Features).
		Int("samples", e.Samples)
}

// InsufficientDataError reports too few rows, for example a split that would
// leave one side empty. It matches ErrEmptyData.
type InsufficientDataError struct {
	Op     string
	Reason string
	Need   int
	Got    int
}

func NewInsufficientDataError(op, reason string, need, got int) error {
	return errors.WithStack(&InsufficientDataError{Op: op, Reason: reason, Need: need, Got: got})
}

func (e *InsufficientDataError) Error() string {
	detail := fmt.Sprintf("need at least %d, got %d", e.Need, e.Got)
	if e.Reason != "" {
		detail = e.Reason + " (" + detail + ")"
	}
	return prefix + e.Op + ": insufficient data: " + detail
}

func (e *InsufficientDataError) Unwrap() error { return ErrEmptyData }

func (e *InsufficientDataError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "InsufficientDataError").
		Str("operation", e.Op).
		Str("reason", e.Reason).
		Int("need", e.Need).
		Int("got", e.Got)
}

// NumericalInstabilityError reports NaN or Inf values. Row is the first
// offending row, or the position in the checked slice.
type NumericalInstabilityError struct {
	Op     string
	Values []float64
	Row    int
}

// maxShownValues caps how many offending values Error prints.
const maxShownValues = 5

func NewNumericalInstabilityError(op string, values []float64, row int) error {
	return errors.WithStack(&NumericalInstabilityError{Op: op, Values: values, Row: row})
}

func (e *NumericalInstabilityError) Error() string {
	shown := e.Values
	if len(shown) > maxShownValues {
		shown = shown[:maxShownValues]
	}
	parts := make([]string, 0, maxShownValues+1)
	for _, v := range shown {
		parts = append(parts, fmt.Sprintf("%.6g", v))
	}
	if len(e.Values) > maxShownValues {
		parts = append(parts, "...")
	}
	return fmt.Sprintf(prefix+"numerical instability detected in %s at row %d. Values: [%s]",
		e.Op, e.Row, strings.Join(parts, ", "))
}

func (e *NumericalInstabilityError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("type", "NumericalInstabilityError").
		Str("operation", e.Op).
		Int("row", e.Row).
		Floats64("values", e.Values)
}
