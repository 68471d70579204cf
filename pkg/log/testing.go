package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// capture is the buffer and level shared by a TestLogger and every logger
// derived from it with With.
type capture struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	level Level
}

// TestLogger records each log call as one JSON line in memory.
type TestLogger struct {
	c      *capture
	fields []any
}

// NewTestLogger returns a logger that keeps records at or above level, and
// the buffer it writes to.
//
//	logger, buf := log.NewTestLogger(log.LevelDebug)
//	logger.Info("split done", log.TrainSamplesKey, 4)
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	c := &capture{level: level}
	return &TestLogger{c: c}, &c.buf
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.write(LevelDebug, msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.write(LevelInfo, msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.write(LevelWarn, msg, fields) }

func (t *TestLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttrKey, err}, fields[1:]...)
		}
	}
	t.write(LevelError, msg, fields)
}

func (t *TestLogger) With(fields ...any) Logger {
	merged := make([]any, 0, len(t.fields)+len(fields))
	merged = append(merged, t.fields...)
	merged = append(merged, fields...)
	return &TestLogger{c: t.c, fields: merged}
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	return level >= t.c.level
}

func (t *TestLogger) write(level Level, msg string, fields []any) {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if level < t.c.level {
		return
	}

	record := map[string]any{"level": level.String(), "message": msg}
	putPairs(record, t.fields)
	putPairs(record, fields)

	line, err := json.Marshal(record)
	if err != nil {
		line, _ = json.Marshal(map[string]any{"level": level.String(), "message": msg, ErrAttrKey: err.Error()})
	}
	t.c.buf.Write(line)
	t.c.buf.WriteByte('\n')
}

// putPairs stores alternating key/value fields; errors are stored as text.
func putPairs(dst map[string]any, kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		v := kv[i+1]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		dst[fmt.Sprint(kv[i])] = v
	}
}

// GetLogEntries decodes every captured record.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	t.c.mu.Lock()
	raw := append([]byte(nil), t.c.buf.Bytes()...)
	t.c.mu.Unlock()

	var entries []map[string]interface{}
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, sc.Err()
}

// ContainsMessage reports whether text appears anywhere in the output.
func (t *TestLogger) ContainsMessage(text string) bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	return strings.Contains(t.c.buf.String(), text)
}

// ContainsField reports whether some record has key == value after JSON
// decoding, so numbers must be given as float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if got, ok := e[key]; ok && got == value {
			return true
		}
	}
	return false
}

// Clear drops everything captured so far.
func (t *TestLogger) Clear() {
	t.c.mu.Lock()
	t.c.buf.Reset()
	t.c.mu.Unlock()
}

// TestLoggerProvider hands out TestLoggers that share one buffer. Install it
// with SetProvider to capture what library code logs:
//
//	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
//	log.SetProvider(provider)
//	defer log.SetProvider(nil)
type TestLoggerProvider struct {
	root *TestLogger
}

func NewTestLoggerProvider(level Level) (*TestLoggerProvider, *bytes.Buffer) {
	root, buf := NewTestLogger(level)
	return &TestLoggerProvider{root: root}, buf
}

func (p *TestLoggerProvider) GetLogger() Logger { return p.root }

func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.root.With(ComponentKey, name)
}

func (p *TestLoggerProvider) SetLevel(level Level) {
	p.root.c.mu.Lock()
	p.root.c.level = level
	p.root.c.mu.Unlock()
}

// Logger returns the root logger for assertions.
func (p *TestLoggerProvider) Logger() *TestLogger { return p.root }
