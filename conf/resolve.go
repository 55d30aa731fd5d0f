package conf

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ArgInclude returns the named argument include.
func (c *Conf) ArgInclude(name string) (*ArgInclude, error) {
	inc, ok := c.ArgIncludes[name]
	if !ok || inc == nil {
		return nil, missingInclude(name, "defargs", slices.Collect(maps.Keys(c.ArgIncludes)))
	}

	return inc, nil
}

// OptionInclude returns the named option include.
func (c *Conf) OptionInclude(name string) ([]Opt, error) {
	opts, ok := c.OptionIncludes[name]
	if !ok {
		return nil, missingInclude(name, "defopts", slices.Collect(maps.Keys(c.OptionIncludes)))
	}

	return opts, nil
}

// missingInclude builds an [ErrMissingInclude] error, suggesting the closest
// declared name when there is one.
func missingInclude(name, kind string, known []string) error {
	err := ErrMissingInclude.With(
		slog.String("include", name),
		slog.String("kind", kind),
	)

	slices.Sort(known)

	if matches := fuzzy.Find(name, known); len(matches) > 0 {
		err = err.With(slog.String("suggest", matches[0].Str))
	}

	return err
}

// chain tracks the includes currently being expanded by one resolution call.
type chain []string

func (ch chain) enter(name string) (chain, error) {
	if slices.Contains(ch, name) {
		return ch, ErrCyclicInclude.With(
			slog.String("include", name),
			slog.String("chain", strings.Join(slices.Concat(ch, chain{name}), " -> ")),
		)
	}

	return append(ch[:len(ch):len(ch)], name), nil
}

// FlattenSubs resolves subs and includes into the list of concrete subs they
// denote. References are replaced in place by the subs of the named
// include, then the subs of each name in includes are appended, all
// recursively and in declaration order.
func (c *Conf) FlattenSubs(subs []Sub, includes []string) ([]*ConcreteSub, error) {
	return expand(c, nil, subs, includes,
		func(inc *ArgInclude) []Sub { return inc.Subs })
}

// FindSub returns the first sub among the flattened subs whose name (or
// alias, when checkAliases is set) equals name. It returns nil if there is
// no such sub.
func (c *Conf) FindSub(
	subs []Sub,
	includes []string,
	name string,
	checkAliases bool,
) (*ConcreteSub, error) {
	flat, err := c.FlattenSubs(subs, includes)
	if err != nil {
		return nil, err
	}

	for _, sub := range flat {
		if sub.Name == "" {
			return nil, ErrInvalidConfig.With(
				slog.String("reason", "sub without name is only valid as main"))
		}

		if sub.Matches(name, checkAliases) {
			return sub, nil
		}
	}

	return nil, nil
}

// DigSubs returns the chain of subs from [Conf.Main] to the sub found by
// following path, root first.
func (c *Conf) DigSubs(path []string) ([]*ConcreteSub, error) {
	result := make([]*ConcreteSub, 0, len(path)+1)
	result = append(result, &c.Main)

	for i, name := range path {
		parent := result[len(result)-1]

		sub, err := c.FindSub(parent.Subs, parent.Includes, name, true)
		if err != nil {
			return nil, err
		}

		if sub == nil {
			return nil, ErrInternal.With(
				slog.String("reason", "sub not found"),
				slog.String("path", strings.Join(path[:i+1], " ")),
			)
		}

		result = append(result, sub)
	}

	return result, nil
}

// DigSub returns the sub found by following path from [Conf.Main].
func (c *Conf) DigSub(path []string) (*ConcreteSub, error) {
	subs, err := c.DigSubs(path)
	if err != nil {
		return nil, err
	}

	return subs[len(subs)-1], nil
}

// ExpandFlags resolves flags and includes into the concrete flags they
// denote, in the same order [Conf.FlattenSubs] uses.
func (c *Conf) ExpandFlags(flags []Flag, includes []string) ([]*ConcreteFlag, error) {
	return expand(c, nil, flags, includes,
		func(inc *ArgInclude) []Flag { return inc.Flags })
}

// ExpandArgs resolves args and includes into the concrete args they denote,
// in the same order [Conf.FlattenSubs] uses.
func (c *Conf) ExpandArgs(args []Arg, includes []string) ([]*ConcreteArg, error) {
	return expand(c, nil, args, includes,
		func(inc *ArgInclude) []Arg { return inc.Args })
}

func expand[T any](
	c *Conf,
	ch chain,
	entries []Entry[T],
	includes []string,
	field func(*ArgInclude) []Entry[T],
) ([]*T, error) {
	out := make([]*T, 0, len(entries))

	include := func(name string) error {
		next, err := ch.enter(name)
		if err != nil {
			return err
		}

		inc, err := c.ArgInclude(name)
		if err != nil {
			return err
		}

		flat, err := expand(c, next, field(inc), inc.Includes, field)
		if err != nil {
			return err
		}

		out = append(out, flat...)

		return nil
	}

	for _, e := range entries {
		if !e.IsRef() {
			out = append(out, e.Concrete)

			continue
		}

		if err := include(e.Include); err != nil {
			return nil, err
		}
	}

	for _, name := range includes {
		if err := include(name); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ExpandOptions replaces every include option in opts by the options of the
// named option include, recursively.
func (c *Conf) ExpandOptions(opts []Opt) ([]Opt, error) {
	return c.expandOptions(nil, opts)
}

func (c *Conf) expandOptions(ch chain, opts []Opt) ([]Opt, error) {
	out := make([]Opt, 0, len(opts))

	for _, opt := range opts {
		if opt.Type != OptInclude {
			out = append(out, opt)

			continue
		}

		next, err := ch.enter(opt.Value)
		if err != nil {
			return nil, err
		}

		inc, err := c.OptionInclude(opt.Value)
		if err != nil {
			return nil, err
		}

		flat, err := c.expandOptions(next, inc)
		if err != nil {
			return nil, err
		}

		out = append(out, flat...)
	}

	return out, nil
}
