package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// PanicError is a panic recovered by Recover or SafeExecute.
type PanicError struct {
	// Operation is where the panic was recovered, e.g. "pipeline.Run".
	Operation string

	// PanicValue is the value passed to panic().
	PanicValue interface{}

	// Cause is the error the function had already set when it panicked, if any.
	Cause error

	// StackTrace is the goroutine stack at recovery time.
	StackTrace string
}

func (e *PanicError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("datapipe: panic in %s: %v (after: %v)", e.Operation, e.PanicValue, e.Cause)
	}
	return fmt.Sprintf("datapipe: panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap returns Cause, or the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Str("panic_value", fmt.Sprint(e.PanicValue)).
		Str("type", "PanicError")
}

// NewPanicError は新しいPanicErrorを作成し、現在のスタックを記録します。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		Operation:  operation,
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
	}
}

// Recover converts a panic into a *PanicError stored in *err.
// It must be deferred directly:
//
//	func Run() (err error) {
//	    defer errors.Recover(&err, "pipeline.Run")
//	    ...
//	}
//
// An error already held in *err is kept as the PanicError's Cause.
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	panicErr := NewPanicError(operation, r)
	panicErr.Cause = *err
	*err = panicErr
}

// SafeExecute runs fn and returns its error, or a *PanicError if it panics.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
