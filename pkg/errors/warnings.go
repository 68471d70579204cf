package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/rs/zerolog"
)

// warnSink routes non-fatal diagnostics. A zerolog hook, when installed,
// takes precedence over the plain handler.
type warnSink struct {
	mu      sync.Mutex
	handler func(error)
	zerolog func(error)
}

var sink = &warnSink{
	handler: func(w error) { log.Printf("datapipe-warning: %v", w) },
}

func (s *warnSink) emit(w error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.zerolog != nil:
		s.zerolog(w)
	case s.handler != nil:
		s.handler(w)
	}
}

// SetWarningHandler replaces the fallback warning handler. Passing nil
// discards warnings unless a zerolog hook is installed.
//
//	errors.SetWarningHandler(func(error) {}) // silence RankWarning
func SetWarningHandler(handler func(w error)) {
	sink.mu.Lock()
	sink.handler = handler
	sink.mu.Unlock()
}

// SetZerologWarnFunc installs the structured warning hook. pkg/log provides
// one through NewZerologWarnFunc; nil restores the fallback handler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	sink.mu.Lock()
	sink.zerolog = warnFunc
	sink.mu.Unlock()
}

// Warn reports w without interrupting the caller.
func Warn(w error) { sink.emit(w) }

// RankWarning reports that a least-squares design matrix lost rank and the
// minimum-norm solution was kept.
type RankWarning struct {
	Op       string
	Rank     int
	Features int
}

// NewRankWarning returns a RankWarning for op.
func NewRankWarning(op string, rank, features int) *RankWarning {
	return &RankWarning{Op: op, Rank: rank, Features: features}
}

func (w *RankWarning) Error() string {
	return fmt.Sprintf("%s: design matrix is rank deficient (rank %d < %d features); using the minimum-norm least-squares solution",
		w.Op, w.Rank, w.Features)
}

func (w *RankWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "RankWarning").
		Str("operation", w.Op).
		Int("rank", w.Rank).
		Int("features", w.Features)
}
