package errors

import "github.com/cockroachdb/errors"

// Thin re-exports so callers only import this package.
var (
	Is        = errors.Is
	As        = errors.As
	New       = errors.New
	Newf      = errors.Newf
	Wrap      = errors.Wrap
	Wrapf     = errors.Wrapf
	WithStack = errors.WithStack
)

// Sentinels matched with Is by the typed errors below.
var (
	ErrEmptyData      = errors.New("empty data")
	ErrSingularMatrix = errors.New("singular matrix")
)
