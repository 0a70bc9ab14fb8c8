package symexec

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"
)

// LogLevel represents the severity level for logs.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown strings map to warn.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "INFO":
		return LevelInfo
	case "DEBUG":
		return LevelDebug
	default:
		return LevelWarn
	}
}

// Logger receives progress from symbolic runs and the solver.
type Logger interface {
	// Debugf, Infof, Warnf and Errorf log at the matching level.
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// With returns a child logger augmented with the provided fields.
	With(fields map[string]any) Logger
}

// timestampLayout is a strftime layout, rendered in UTC.
const timestampLayout = "%Y-%m-%dT%H:%M:%SZ"

// textFormatter emits compact single-line text logs.
// Format: [LEVEL] ts msg key1=val1 key2=val2 ...
type textFormatter struct {
	includeTimestamp bool
}

func (f *textFormatter) format(ts time.Time, level LogLevel, msg string, fields map[string]any) []byte {
	var b strings.Builder
	b.Grow(96)

	b.WriteByte('[')
	b.WriteString(level.String())
	b.WriteString("] ")

	if f.includeTimestamp {
		b.WriteString(timefmt.Format(ts.UTC(), timestampLayout))
		b.WriteByte(' ')
	}

	b.WriteString(msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(safeSprint(fields[k]))
	}

	b.WriteByte('\n')
	return []byte(b.String())
}

func safeSprint(v any) string {
	switch t := v.(type) {
	case string:
		// quote values containing whitespace so fields stay splittable
		if strings.IndexFunc(t, func(r rune) bool { return r <= ' ' }) >= 0 {
			return fmt.Sprintf("%q", t)
		}
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// defaultLogger writes text lines to out. It is safe for concurrent use.
type defaultLogger struct {
	out       io.Writer
	level     LogLevel // most verbose level written
	formatter *textFormatter

	// fields are appended to every line, e.g. chunk=3 or order=lowest.
	fields map[string]any

	// mu is shared with child loggers so lines never interleave.
	mu *sync.Mutex
}

// NewLogger creates a text logger writing to w, or os.Stderr when w is nil.
func NewLogger(level LogLevel, w io.Writer) Logger {
	return newLogger(level, w, true)
}

func newLogger(level LogLevel, w io.Writer, timestamps bool) *defaultLogger {
	if w == nil {
		w = os.Stderr
	}
	return &defaultLogger{
		out:       w,
		level:     level,
		formatter: &textFormatter{includeTimestamp: timestamps},
		fields:    make(map[string]any),
		mu:        &sync.Mutex{},
	}
}

// noopLogger is used when no log level is configured.
type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any) {}
func (noopLogger) Infof(format string, args ...any)  {}
func (noopLogger) Warnf(format string, args ...any)  {}
func (noopLogger) Errorf(format string, args ...any) {}
func (l noopLogger) With(map[string]any) Logger      { return l }

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

func (l *defaultLogger) enabled(level LogLevel) bool {
	return level <= l.level
}

// With never modifies l; the child gets its own merged copy of the fields.
func (l *defaultLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &defaultLogger{
		out:       l.out,
		level:     l.level,
		formatter: l.formatter,
		fields:    merged,
		mu:        l.mu,
	}
}

func (l *defaultLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *defaultLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *defaultLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *defaultLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *defaultLogger) logf(level LogLevel, format string, args ...any) {
	// Disabled levels are never formatted.
	if !l.enabled(level) {
		return
	}
	line := l.formatter.format(time.Now(), level, fmt.Sprintf(format, args...), l.fields)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}

// Formula summaries ----------------------------------------------------------

// exprSummary renders e for a log line, eliding the middle of long formulas.
func exprSummary[T any](e Expr[T], maxLen int) string {
	if e == nil {
		return "<nil>"
	}
	s := e.String()
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	half := maxLen / 2
	return fmt.Sprintf("%s…%s (+%d chars)", s[:half], s[len(s)-half:], len(s)-2*half)
}
