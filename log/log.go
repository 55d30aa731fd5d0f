package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is a [slog.Logger] with a Trace level and the configuration it was
// built from.
//
// Logger values are immutable and safe for concurrent use. The zero Logger
// discards every message, so packages can accept one as an optional setting.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a Logger writing to w, configured by the defaults
// ([DefaultLevel], [DefaultFormat], [DefaultTimeLayout], [DefaultCaller],
// [DefaultPretty]) overridden by opts.
func Make(w io.Writer, opts ...Option) Logger {
	return fromConfig(makeConfig(w, opts...))
}

func fromConfig(cfg config) Logger {
	return Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Wrap returns a Logger with the receiver's configuration overridden by opts.
// Attributes added with [Logger.With] are dropped.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.Logger == nil {
		return l
	}

	return fromConfig(apply(l.config, opts...))
}

// With returns a Logger that adds attrs to every message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{Logger: slog.New(l.Handler().WithAttrs(attrs)), config: l.config}
}

// Level returns the minimum level logged.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the output format.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logDepth(ctx, callerDepth, LevelTrace, msg, attrs)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logDepth(ctx, callerDepth, LevelDebug, msg, attrs)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logDepth(ctx, callerDepth, LevelInfo, msg, attrs)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logDepth(ctx, callerDepth, LevelWarn, msg, attrs)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logDepth(ctx, callerDepth, LevelError, msg, attrs)
}

// Trace and the other context-free variants log with
// [DefaultContextProvider].
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.logDepth(DefaultContextProvider(), callerDepth, LevelTrace, msg, attrs)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.logDepth(DefaultContextProvider(), callerDepth, LevelDebug, msg, attrs)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.logDepth(DefaultContextProvider(), callerDepth, LevelInfo, msg, attrs)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.logDepth(DefaultContextProvider(), callerDepth, LevelWarn, msg, attrs)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.logDepth(DefaultContextProvider(), callerDepth, LevelError, msg, attrs)
}

// callerDepth is the runtime.Callers skip count that reports the caller of
// an exported logging function.
const callerDepth = 3

func (l Logger) logDepth(
	ctx context.Context,
	depth int,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if l.Logger == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	runtime.Callers(depth, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
