// Command tabryc compiles a tabry source file into its JSON config.
//
//	tabryc input.tabry [output.json]
//
// The config is written to standard output when no output file is given.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tabry/cli/cmd"
	"github.com/ardnew/tabry/lang"
	"github.com/ardnew/tabry/log"
	"github.com/ardnew/tabry/pkg"
)

type tabryc struct {
	Format string `default:"json" enum:"json,yaml" help:"Output format (${enum})."                       short:"f"`
	Indent int    `default:"2"                     help:"JSON indent width, or 0 for a single line." short:"i"`

	Input  string `arg:"" help:"Tabry source file."                       type:"existingfile"`
	Output string `arg:"" help:"Output file, standard output when omitted." optional:"" type:"path"`
}

func (t *tabryc) Run(ctx context.Context) error {
	src, err := os.Open(t.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	cfg, err := lang.CompileReader(ctx, src, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	data, err := cmd.Encode(cfg, t.Format, t.Indent)
	if err != nil {
		return err
	}

	if t.Output == "" {
		_, err = os.Stdout.Write(data)

		return err
	}

	if err := os.WriteFile(t.Output, data, 0o644); err != nil { //nolint:gosec
		return cmd.ErrWriteConfig.Wrap(err).With(slog.String("file", t.Output))
	}

	return nil
}

func main() {
	ctx := context.Background()

	var cli tabryc

	ktx := kong.Parse(&cli,
		kong.Name("tabryc"),
		kong.Description("Compile a "+pkg.Name+" source file into its JSON config."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := ktx.Run(ctx); err != nil {
		log.Error("compile failed", slog.Any("error", err))
		os.Exit(1)
	}
}
