package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrFmtHandler adds a "stacktrace" attribute to records whose "error"
// attribute carries a cockroachdb/errors stack.
type ErrFmtHandler struct {
	next slog.Handler
}

func WrapByErrFmtHandler(next slog.Handler) slog.Handler {
	return &ErrFmtHandler{next: next}
}

func (h *ErrFmtHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	if trace := stackOf(r); trace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ErrFmtHandler) WithGroup(name string) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithGroup(name)}
}

func stackOf(r slog.Record) (trace string) {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != ErrAttrKey {
			return true
		}
		if err, ok := a.Value.Any().(error); ok {
			trace = extractStacktrace(err)
		}
		return false
	})
	return trace
}

// extractStacktrace returns the first stack recorded along the cause chain.
func extractStacktrace(err error) string {
	for ; err != nil; err = errors.UnwrapOnce(err) {
		if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
			return details[0]
		}
	}
	return ""
}
