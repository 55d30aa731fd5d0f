package engine

import (
	"context"
	"log/slog"

	"github.com/ardnew/tabry/conf"
	"github.com/ardnew/tabry/log"
)

// Machine is the token-driven parser of a command line. It never rejects a
// token: anything it cannot classify becomes a positional argument.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	conf   *conf.Conf
	state  *State
	logger log.Logger
}

// NewMachine returns a Machine in its initial state.
func NewMachine(c *conf.Conf, opts ...Option) *Machine {
	cfg := makeConfig(opts...)

	return &Machine{
		conf:   c,
		state:  NewState(),
		logger: cfg.logger,
	}
}

// Run feeds every token to a new Machine and returns its result.
func Run(
	ctx context.Context,
	c *conf.Conf,
	tokens []string,
	opts ...Option,
) (*Result, error) {
	m := NewMachine(c, opts...)

	for _, token := range tokens {
		if err := m.Next(ctx, token); err != nil {
			return nil, err
		}
	}

	return m.Result()
}

// State returns the current state. It is owned by the Machine and changes
// with every call to [Machine.Next].
func (m *Machine) State() *State { return m.state }

// Result resolves the current state into a [Result].
func (m *Machine) Result() (*Result, error) {
	return NewResult(m.conf, m.state)
}

// Next advances the machine by one token.
func (m *Machine) Next(ctx context.Context, token string) error {
	if m.state.Mode == ModeFlagArg {
		m.state.FlagArgs[m.state.CurrentFlag] = token
		m.step(ctx, "flag value", token)

		m.state.Mode = ModeSubcommand
		m.state.CurrentFlag = ""

		return nil
	}

	if ok, err := m.matchSubcommand(ctx, token); ok || err != nil {
		return err
	}

	if m.matchDashdash(ctx, token) {
		return nil
	}

	if ok, err := m.matchFlag(ctx, token); ok || err != nil {
		return err
	}

	if m.matchHelp(ctx, token) {
		return nil
	}

	m.state.Args = append(m.state.Args, token)
	m.step(ctx, "argument", token)

	return nil
}

func (m *Machine) matchSubcommand(ctx context.Context, token string) (bool, error) {
	if len(m.state.Args) > 0 {
		return false, nil
	}

	here, err := m.conf.DigSub(m.state.Subs)
	if err != nil {
		return false, err
	}

	sub, err := m.conf.FindSub(here.Subs, here.Includes, token, true)
	if err != nil || sub == nil {
		return false, err
	}

	m.state.Subs = append(m.state.Subs, sub.Name)
	m.step(ctx, "subcommand", token)

	return true, nil
}

func (m *Machine) matchDashdash(ctx context.Context, token string) bool {
	if m.state.Dashdash || token != "--" {
		return false
	}

	m.state.Dashdash = true
	m.step(ctx, "dashdash", token)

	return true
}

// matchFlag searches the flags of the selected subcommands, innermost first.
func (m *Machine) matchFlag(ctx context.Context, token string) (bool, error) {
	if m.state.Dashdash {
		return false, nil
	}

	subs, err := m.conf.DigSubs(m.state.Subs)
	if err != nil {
		return false, err
	}

	for i := len(subs) - 1; i >= 0; i-- {
		flags, err := m.conf.ExpandFlags(subs[i].Flags, subs[i].Includes)
		if err != nil {
			return false, err
		}

		for _, f := range flags {
			if !MatchFlag(f, token) {
				continue
			}

			if f.Arg {
				m.state.Mode = ModeFlagArg
				m.state.CurrentFlag = f.Name
			} else {
				m.state.Flags[f.Name] = true
			}

			m.step(ctx, "flag", token)

			return true, nil
		}
	}

	return false, nil
}

func (m *Machine) matchHelp(ctx context.Context, token string) bool {
	if m.state.Dashdash || !IsHelp(token) {
		return false
	}

	m.state.Help = true
	m.step(ctx, "help", token)

	return true
}

func (m *Machine) step(ctx context.Context, kind, token string) {
	m.logger.TraceContext(ctx, "step",
		slog.String("kind", kind),
		slog.String("token", token),
		slog.Any("state", m.state))
}
