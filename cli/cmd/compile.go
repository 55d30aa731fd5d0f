package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/lang"
	"github.com/ardnew/tabry/log"
)

// Output formats of compiled configs.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Compile compiles tabry sources into the canonical config.
type Compile struct {
	Output string `default:""     help:"Write to FILE instead of standard output."      placeholder:"FILE" short:"o" type:"path"`
	Format string `default:"json" enum:"json,yaml" help:"Output format (${enum})."                       short:"f"`
	Indent int    `default:"2"                     help:"JSON indent width, or 0 for a single line." short:"i"`

	Source []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context, out io.Writer) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := openSources(c.Source)
	if src == nil {
		return ErrNoSource.With(slog.Any("source", c.Source))
	}
	defer src.Close()

	cfg, err := lang.CompileReader(ctx, src, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	data, err := Encode(cfg, c.Format, c.Indent)
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err = out.Write(data)

		return err
	}

	if err := os.WriteFile(c.Output, data, 0o644); err != nil { //nolint:gosec
		return ErrWriteConfig.Wrap(err).With(slog.String("file", c.Output))
	}

	log.DebugContext(ctx, "compiled config",
		slog.Any("source", src.Names()),
		slog.String("output", c.Output),
		slog.String("format", c.Format))

	return nil
}

// Encode renders cfg in the named format.
func Encode(cfg *conf.Conf, format string, indent int) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return cfg.Encode(indent)
	case FormatYAML:
		return cfg.EncodeYAML()
	default:
		return nil, ErrFormat.With(slog.String("format", format))
	}
}
