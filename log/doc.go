// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// A [Logger] is an immutable value configured with functional options when
// it is made:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithPretty(false))
//
//	logger.Trace("step", slog.String("token", "--verbose"))
//
// The zero Logger discards everything, so library types accept a Logger as
// an optional dependency and log unconditionally:
//
//	var logger log.Logger // no-op
//	logger.Debug("never written")
//
// # Default Logger
//
// Package-level functions ([Trace], [Debug], [Info], [Warn], [Error] and their
// *Context variants) write through a process-wide default logger. It writes
// to stderr so that completion candidates printed on stdout are never mixed
// with log output. Use [Config] to reconfigure it:
//
//	log.Config(log.WithLevel(log.ParseLevel("debug")))
//
// # Pretty Output
//
// With [WithPretty] enabled (the default), text and JSON records are
// colorized using a lipgloss renderer bound to the output writer. Writers
// that are not terminals get plain output.
package log
