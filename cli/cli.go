package cli

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tabry/cli/cmd"
	"github.com/ardnew/tabry/locate"
	"github.com/ardnew/tabry/log"
	"github.com/ardnew/tabry/pkg"
)

// CLI is the top-level command-line interface for tabry.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	ImportPath []string `help:"Directory searched for configs before TABRY_IMPORT_PATH (repeatable)." name:"import-path" placeholder:"DIR" short:"I" type:"path"`
	Debug      bool     `help:"Log every parse step (also enabled by TABRY_DEBUG)."`

	Complete cmd.Complete `cmd:"" help:"Print completion candidates for a command line"`
	Compile  cmd.Compile  `cmd:"" help:"Compile tabry sources into a JSON config"`
	Commands cmd.Commands `cmd:"" help:"List the commands with a config on the import path"`
	Bash     cmd.Bash     `cmd:"" help:"Print the bash integration script"`
	Fish     cmd.Fish     `cmd:"" help:"Print the fish integration script"`
	Repl     cmd.Repl     `cmd:"" help:"Explore the completions of a config interactively"`
}

// Run executes the tabry CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig),
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	debug := debugEnv(os.Getenv(pkg.EnvDebug))
	if debug || slices.Contains(args, "--debug") {
		log.Config(log.WithLevel(log.LevelTrace))
	}

	groups := []kong.Group{cli.Log.group()}
	if g := cli.Pprof.group(); g.Key != "" {
		groups = append(groups, g)
	}

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(groups),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.BindSingletonProvider(func() *locate.Locator {
			return locate.New(
				locate.WithImportPath(cli.ImportPath...),
				locate.WithCacheDir(cachePath(baseCompiled)),
				locate.WithLogger(log.Default()),
			)
		}),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolveYAML,
			configPath(baseConfig+".yaml"),
			configPath(baseConfig+".yml"),
		),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx, debug || cli.Debug)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
