package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/ardnew/tabry/engine"
	"github.com/ardnew/tabry/locate"
	"github.com/ardnew/tabry/log"
	"github.com/ardnew/tabry/tokenize"
)

// Complete prints the completion candidates for a command line.
type Complete struct {
	Compline  string `arg:"" help:"Command line being completed (COMP_LINE)."             name:"compline"`
	Comppoint int    `arg:"" help:"Cursor offset into the command line, in characters." name:"comppoint"`
}

// Run executes the complete command.
func (c *Complete) Run(
	ctx context.Context,
	loc *locate.Locator,
	out io.Writer,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := log.Default()

	toks, err := tokenize.Split(c.Compline, c.Comppoint)
	if err != nil {
		return err
	}

	logger.TraceContext(ctx, "tokenized",
		slog.String("command", toks.Command),
		slog.Any("arguments", toks.Arguments),
		slog.String("last", toks.Last))

	path, err := loc.Find(toks.Command)
	if err != nil {
		return err
	}

	conf, err := loc.Load(ctx, path)
	if err != nil {
		return err
	}

	res, err := engine.Run(ctx, conf, toks.Arguments, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	if logger.Level() <= log.LevelDebug {
		state, err := json.Marshal(res.State)
		if err == nil {
			logger.DebugContext(ctx, "parse state",
				slog.String("config", path),
				slog.String("state", string(state)))
		}
	}

	opts, err := engine.NewFinder(res, engine.WithLogger(logger)).Options(ctx, toks.Last)
	if err != nil {
		return err
	}

	return opts.Write(out)
}
