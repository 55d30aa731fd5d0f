package engine

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/log"
)

// Set is a set of strings.
type Set map[string]struct{}

// Add inserts v into the set.
func (s Set) Add(v string) { s[v] = struct{}{} }

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]

	return ok
}

// Sorted returns the elements of the set in lexical order.
func (s Set) Sorted() []string { return slices.Sorted(maps.Keys(s)) }

// Options holds completion candidates.
//
// Options are literal candidates starting with Prefix. Special holds
// directives for the shell integration ("file", "dir", "delegate <cmd>"),
// which are never filtered.
type Options struct {
	Prefix  string
	Options Set
	Special Set
}

func newOptions(prefix string) *Options {
	return &Options{
		Prefix:  prefix,
		Options: Set{},
		Special: Set{},
	}
}

func (o *Options) add(v string) {
	if strings.HasPrefix(v, o.Prefix) {
		o.Options.Add(v)
	}
}

// Write prints the candidates one per line, in lexical order. Specials, if
// any, follow after a blank line; when there are no options, an extra blank
// line precedes them.
func (o *Options) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, v := range o.Options.Sorted() {
		bw.WriteString(v)
		bw.WriteByte('\n')
	}

	if len(o.Special) > 0 {
		if len(o.Options) == 0 {
			bw.WriteByte('\n')
		}

		bw.WriteByte('\n')

		for _, v := range o.Special.Sorted() {
			bw.WriteString(v)
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// Finder computes completion candidates for a [Result].
type Finder struct {
	result *Result
	logger log.Logger
	shell  Shell
}

// NewFinder returns a Finder for r.
func NewFinder(r *Result, opts ...Option) *Finder {
	cfg := makeConfig(opts...)

	return &Finder{
		result: r,
		logger: cfg.logger,
		shell:  cfg.shell,
	}
}

// Options returns the candidates for a token beginning with prefix.
func (f *Finder) Options(ctx context.Context, prefix string) (*Options, error) {
	res := newOptions(prefix)

	var err error

	switch f.result.State.Mode {
	case ModeFlagArg:
		err = f.flagArg(ctx, res)
	default:
		err = f.subcommand(ctx, res)
	}

	if err != nil {
		return nil, err
	}

	f.logger.TraceContext(ctx, "options",
		slog.String("prefix", prefix),
		slog.Int("options", len(res.Options)),
		slog.Int("special", len(res.Special)))

	return res, nil
}

func (f *Finder) subcommand(ctx context.Context, res *Options) error {
	gated, err := f.requiredFlag(res)
	if gated || err != nil {
		return err
	}

	if err := f.subs(res); err != nil {
		return err
	}

	if err := f.flags(res); err != nil {
		return err
	}

	return f.args(ctx, res)
}

// requiredFlag offers only the first unused required flag of the current
// subcommand, if there is one.
func (f *Finder) requiredFlag(res *Options) (bool, error) {
	if f.result.State.Dashdash {
		return false, nil
	}

	cur := f.result.Current()

	flags, err := f.result.Conf.ExpandFlags(cur.Flags, cur.Includes)
	if err != nil {
		return false, err
	}

	for _, flag := range flags {
		if flag.Required && !f.result.State.Used(flag.Name) {
			res.add(conf.FlagToken(flag.Name))

			return true, nil
		}
	}

	return false, nil
}

// subs offers the child subcommands, until a positional argument is given.
func (f *Finder) subs(res *Options) error {
	if len(f.result.State.Args) > 0 {
		return nil
	}

	cur := f.result.Current()

	subs, err := f.result.Conf.FlattenSubs(cur.Subs, cur.Includes)
	if err != nil {
		return err
	}

	for _, sub := range subs {
		if sub.Name == "" {
			return conf.ErrInvalidConfig.With(
				slog.String("reason", "sub without name is only valid as main"))
		}

		res.add(sub.Name)
	}

	return nil
}

// flags offers every unused flag of every selected subcommand, but only when
// the prefix looks like a flag.
func (f *Finder) flags(res *Options) error {
	if f.result.State.Dashdash || !strings.HasPrefix(res.Prefix, "-") {
		return nil
	}

	for _, sub := range f.result.Subs {
		flags, err := f.result.Conf.ExpandFlags(sub.Flags, sub.Includes)
		if err != nil {
			return err
		}

		for _, flag := range flags {
			if !f.result.State.Used(flag.Name) {
				res.add(conf.FlagToken(flag.Name))
			}
		}
	}

	return nil
}

// args offers the options of the next positional argument, or of the last
// one if it is variadic.
func (f *Finder) args(ctx context.Context, res *Options) error {
	cur := f.result.Current()

	args, err := f.result.Conf.ExpandArgs(cur.Args, cur.Includes)
	if err != nil {
		return err
	}

	n := len(f.result.State.Args)

	switch {
	case n < len(args):
		return f.offer(ctx, res, args[n].Options)
	case len(args) > 0 && args[len(args)-1].Varargs:
		return f.offer(ctx, res, args[len(args)-1].Options)
	}

	return nil
}

// flagArg offers the options of the flag awaiting a value, searching the
// selected subcommands from the root.
func (f *Finder) flagArg(ctx context.Context, res *Options) error {
	name := f.result.State.CurrentFlag

	for _, sub := range f.result.Subs {
		flags, err := f.result.Conf.ExpandFlags(sub.Flags, sub.Includes)
		if err != nil {
			return err
		}

		for _, flag := range flags {
			if flag.Name == name {
				return f.offer(ctx, res, flag.Options)
			}
		}
	}

	return nil
}

// offer adds the candidates described by opts.
func (f *Finder) offer(ctx context.Context, res *Options, opts []conf.Opt) error {
	opts, err := f.result.Conf.ExpandOptions(opts)
	if err != nil {
		return err
	}

	for _, opt := range opts {
		switch opt.Type {
		case conf.OptFile:
			res.Special.Add("file")

		case conf.OptDir:
			res.Special.Add("dir")

		case conf.OptConst:
			res.add(opt.Value)

		case conf.OptDelegate:
			res.Special.Add("delegate " + opt.Value)

		case conf.OptShell:
			for _, line := range f.runShell(ctx, opt.Value) {
				res.add(line)
			}

		default:
			f.logger.WarnContext(ctx, "unknown option type",
				slog.String("type", string(opt.Type)))
		}
	}

	return nil
}

// runShell returns the non-empty output lines of a shell option. Failures
// are logged and yield no lines.
func (f *Finder) runShell(ctx context.Context, command string) []string {
	env, err := shellEnv(f.result)
	if err != nil {
		f.logger.WarnContext(ctx, "shell option state",
			slog.String("command", command),
			slog.Any("error", err))

		return nil
	}

	out, err := f.shell(ctx, command, env)
	if err != nil {
		f.logger.WarnContext(ctx, "shell option failed",
			slog.String("command", command),
			slog.Any("error", err))

		return nil
	}

	var lines []string

	for line := range bytes.SplitSeq(out, []byte("\n")) {
		if len(line) > 0 {
			lines = append(lines, string(line))
		}
	}

	return lines
}
