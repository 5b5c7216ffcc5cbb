package objectvalidation

import (
	"context"
	"log/slog"
)

// Reporter receives violations as they are found in collect-all mode.
type Reporter interface {
	Report(v *Violation)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(v *Violation)

func (f ReporterFunc) Report(v *Violation) {
	f(v)
}

// Discard drops every violation.
var Discard Reporter = ReporterFunc(func(*Violation) {})

// Collector keeps every reported violation. It is not safe for concurrent
// use; give each Validate call its own Collector.
type Collector struct {
	Violations Violations
}

func (c *Collector) Report(v *Violation) {
	c.Violations = append(c.Violations, v)
}

// LogReporter writes one error record per violation to l. A nil l uses
// slog.Default() at report time.
func LogReporter(l *slog.Logger) Reporter {
	return logReporter{l}
}

type logReporter struct {
	l *slog.Logger
}

func (r logReporter) Report(v *Violation) {
	l := r.l
	if l == nil {
		l = slog.Default()
	}
	attrs := []slog.Attr{
		slog.String("property", v.Property),
		slog.String("code", v.Code()),
		slog.String("kind", v.Kind.String()),
	}
	if v.Dependency != "" {
		attrs = append(attrs, slog.String("dependency", v.Dependency))
	}
	l.LogAttrs(context.Background(), slog.LevelError, v.Error(), attrs...)
}

func (o Options) reporter() Reporter {
	if o.Reporter != nil {
		return o.Reporter
	}
	return LogReporter(nil)
}
