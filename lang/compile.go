package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/log"
)

// CompileReader compiles a tabry source read from r.
func CompileReader(ctx context.Context, r io.Reader, opts ...Option) (*conf.Conf, error) {
	ast, err := ParseReader(ctx, r, opts...)
	if err != nil {
		return nil, err
	}

	return Compile(ctx, ast, opts...)
}

// CompileString compiles a tabry source.
func CompileString(ctx context.Context, src string, opts ...Option) (*conf.Conf, error) {
	ast, err := ParseString(ctx, src, opts...)
	if err != nil {
		return nil, err
	}

	return Compile(ctx, ast, opts...)
}

// Compile builds the canonical configuration described by ast.
func Compile(ctx context.Context, ast *AST, opts ...Option) (*conf.Conf, error) {
	o := makeOptions(opts...)

	c := &compiler{
		ctx:    ctx,
		logger: o.logger,
		conf:   conf.New(),
	}

	if err := c.compile(ast); err != nil {
		return nil, err
	}

	c.logger.TraceContext(ctx, "compile complete",
		slog.String("cmd", c.conf.Cmd),
		slog.Int("arg_includes", len(c.conf.ArgIncludes)),
		slog.Int("option_includes", len(c.conf.OptionIncludes)))

	return c.conf, nil
}

// compiler holds the state of a single compilation.
type compiler struct {
	ctx    context.Context
	logger log.Logger
	conf   *conf.Conf
	hasCmd bool
}

func (c *compiler) compile(ast *AST) error {
	for _, stmt := range ast.Statements {
		switch s := stmt.(type) {
		case *Cmd:
			if c.hasCmd {
				return c.errorf(s, "multiple cmd statements")
			}

			c.hasCmd = true
			c.conf.Cmd = s.Name

		case *DefArgs:
			inc := &conf.ArgInclude{}

			for _, bs := range s.Body {
				if d, ok := bs.(*Desc); ok {
					c.logger.TraceContext(c.ctx, "ignoring defargs description",
						slog.String("name", s.Name),
						slog.String("desc", d.Text))

					continue
				}

				err := c.member(&inc.Subs, &inc.Args, &inc.Flags, &inc.Includes, bs)
				if err != nil {
					return err
				}
			}

			if _, ok := c.conf.ArgIncludes[s.Name]; ok {
				c.logger.WarnContext(c.ctx, "defargs redefined",
					slog.String("name", s.Name),
					slog.String("pos", s.At.String()))
			}

			c.conf.ArgIncludes[s.Name] = inc

		case *DefOpts:
			opts, _, err := c.options(s.Body, nil, false)
			if err != nil {
				return err
			}

			if _, ok := c.conf.OptionIncludes[s.Name]; ok {
				c.logger.WarnContext(c.ctx, "defopts redefined",
					slog.String("name", s.Name),
					slog.String("pos", s.At.String()))
			}

			c.conf.OptionIncludes[s.Name] = opts

		default:
			if err := c.subStatement(&c.conf.Main, stmt); err != nil {
				return err
			}
		}
	}

	return nil
}

// subStatement folds a statement of a sub body into sub.
func (c *compiler) subStatement(sub *conf.ConcreteSub, stmt Statement) error {
	if d, ok := stmt.(*Desc); ok {
		sub.Description = d.Text

		return nil
	}

	return c.member(&sub.Subs, &sub.Args, &sub.Flags, &sub.Includes, stmt)
}

// member folds a sub, arg, flag or include statement into the given lists.
func (c *compiler) member(
	subs *[]conf.Sub,
	args *[]conf.Arg,
	flags *[]conf.Flag,
	includes *[]string,
	stmt Statement,
) error {
	switch s := stmt.(type) {
	case *Sub:
		return c.addSubs(subs, s)

	case *Arg:
		return c.addArgs(args, s)

	case *Flag:
		return c.addFlags(flags, s)

	case *Include:
		*includes = append(*includes, s.Names...)

		return nil
	}

	return c.errorf(stmt, fmt.Sprintf("unexpected %T statement", stmt))
}

func (c *compiler) addSubs(subs *[]conf.Sub, stmt *Sub) error {
	for _, group := range stmt.Names {
		s := stmt.Clone().(*Sub)

		sub := &conf.ConcreteSub{
			Name:     group.Name,
			Aliases:  slices.Clone(group.Aliases),
			Includes: s.Includes,
		}

		if s.Description != nil {
			sub.Description = *s.Description
		}

		for _, bs := range s.Body {
			if err := c.subStatement(sub, bs); err != nil {
				return err
			}
		}

		*subs = append(*subs, conf.Of(sub))
	}

	return nil
}

func (c *compiler) addArgs(args *[]conf.Arg, stmt *Arg) error {
	names := stmt.Names
	if len(names) == 0 {
		names = []string{""}
	}

	for _, name := range names {
		s := stmt.Clone().(*Arg)

		opts, desc, err := c.options(s.Body, s.Includes, true)
		if err != nil {
			return err
		}

		arg := &conf.ConcreteArg{
			Name:     name,
			Options:  opts,
			Optional: s.Optional,
			Varargs:  s.Varargs,
		}

		arg.Description, err = c.description(s.Description, desc)
		if err != nil {
			return err
		}

		*args = append(*args, conf.Of(arg))
	}

	return nil
}

func (c *compiler) addFlags(flags *[]conf.Flag, stmt *Flag) error {
	for _, group := range stmt.Names {
		s := stmt.Clone().(*Flag)

		opts, desc, err := c.options(s.Body, s.Includes, true)
		if err != nil {
			return err
		}

		flag := &conf.ConcreteFlag{
			Name:     group.Name,
			Aliases:  slices.Clone(group.Aliases),
			Options:  opts,
			Arg:      s.HasValue,
			Required: s.Required,
		}

		flag.Description, err = c.description(s.Description, desc)
		if err != nil {
			return err
		}

		*flags = append(*flags, conf.Of(flag))
	}

	return nil
}

// description merges an inline description with the desc statements found
// in a body. At most one may be given.
func (c *compiler) description(inline *string, body []*Desc) (string, error) {
	all := len(body)
	if inline != nil {
		all++
	}

	if all > 1 {
		return "", c.errorf(body[len(body)-1], "multiple desc statements")
	}

	switch {
	case inline != nil:
		return *inline, nil
	case len(body) == 1:
		return body[0].Text, nil
	}

	return "", nil
}

// options builds the option list of an arg, flag or defopts body. Inline
// includes come first, then opts and include statements in source order.
// Desc statements are returned when keepDesc is set and dropped otherwise.
func (c *compiler) options(
	body []Statement,
	includes []string,
	keepDesc bool,
) ([]conf.Opt, []*Desc, error) {
	opts := make([]conf.Opt, 0, len(includes)+len(body))

	for _, name := range includes {
		opts = append(opts, conf.Opt{Type: conf.OptInclude, Value: name})
	}

	var descs []*Desc

	for _, stmt := range body {
		switch s := stmt.(type) {
		case *Opts:
			opts = append(opts, compileOpts(s)...)

		case *Include:
			for _, name := range s.Names {
				opts = append(opts, conf.Opt{Type: conf.OptInclude, Value: name})
			}

		case *Title:
			c.logger.TraceContext(c.ctx, "ignoring title",
				slog.String("title", s.Text))

		case *Desc:
			if keepDesc {
				descs = append(descs, s)
			} else {
				c.logger.TraceContext(c.ctx, "ignoring defopts description",
					slog.String("desc", s.Text))
			}

		default:
			return nil, nil, c.errorf(stmt, fmt.Sprintf("unexpected %T statement", stmt))
		}
	}

	return opts, descs, nil
}

func compileOpts(s *Opts) []conf.Opt {
	switch s.Kind {
	case OptsFile:
		return []conf.Opt{{Type: conf.OptFile}}

	case OptsDir:
		return []conf.Opt{{Type: conf.OptDir}}

	case OptsConst:
		opts := make([]conf.Opt, len(s.Values))
		for i, v := range s.Values {
			opts[i] = conf.Opt{Type: conf.OptConst, Value: v}
		}

		return opts

	case OptsShell:
		return []conf.Opt{{Type: conf.OptShell, Value: s.Command}}

	case OptsDelegate:
		return []conf.Opt{{Type: conf.OptDelegate, Value: s.Command}}
	}

	return nil
}

func (c *compiler) errorf(stmt Statement, reason string) error {
	return at(ErrCompile, stmt.Pos()).With(slog.String("reason", reason))
}
