package engine

import (
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Mode is the mode of a [Machine].
type Mode int

const (
	// ModeSubcommand interprets the next token as a subcommand, flag, help
	// request or positional argument.
	ModeSubcommand Mode = iota
	// ModeFlagArg takes the next token as the value of the current flag.
	ModeFlagArg
)

// String returns the JSON name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSubcommand:
		return "subcommand"
	case ModeFlagArg:
		return "flagarg"
	default:
		return "unknown"
	}
}

// State is the parse state built by a [Machine].
type State struct {
	Mode        Mode
	CurrentFlag string // set in ModeFlagArg
	Subs        []string
	Flags       map[string]bool
	FlagArgs    map[string]string
	Args        []string
	Help        bool
	Dashdash    bool
}

// NewState returns an empty State in [ModeSubcommand].
func NewState() *State {
	return &State{
		Subs:     []string{},
		Flags:    map[string]bool{},
		FlagArgs: map[string]string{},
		Args:     []string{},
	}
}

// Used reports whether the named flag was given, with or without a value.
func (s *State) Used(name string) bool {
	if s.Flags[name] {
		return true
	}

	_, ok := s.FlagArgs[name]

	return ok
}

type stateJSON struct {
	Mode        string            `json:"mode"`
	CurrentFlag string            `json:"current_flag,omitempty"`
	Flags       map[string]bool   `json:"flags"`
	FlagArgs    map[string]string `json:"flag_args"`
	Args        []string          `json:"args"`
	Help        bool              `json:"help"`
	Dashdash    bool              `json:"dashdash"`
	Subs        []string          `json:"subs"`
}

// MarshalJSON encodes the state for debugging output.
func (s *State) MarshalJSON() ([]byte, error) {
	v := stateJSON{
		Mode:     s.Mode.String(),
		Flags:    s.Flags,
		FlagArgs: s.FlagArgs,
		Args:     s.Args,
		Help:     s.Help,
		Dashdash: s.Dashdash,
		Subs:     s.Subs,
	}

	if s.Mode == ModeFlagArg {
		v.CurrentFlag = s.CurrentFlag
	}

	if v.Flags == nil {
		v.Flags = map[string]bool{}
	}

	if v.FlagArgs == nil {
		v.FlagArgs = map[string]string{}
	}

	if v.Args == nil {
		v.Args = []string{}
	}

	if v.Subs == nil {
		v.Subs = []string{}
	}

	return json.Marshal(v)
}

// LogValue implements slog.LogValuer.
func (s *State) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("mode", s.Mode.String())}

	if s.Mode == ModeFlagArg {
		attrs = append(attrs, slog.String("current_flag", s.CurrentFlag))
	}

	flags := slices.Sorted(maps.Keys(s.Flags))

	flagArgs := make([]string, 0, len(s.FlagArgs))
	for _, k := range slices.Sorted(maps.Keys(s.FlagArgs)) {
		flagArgs = append(flagArgs, k+"="+s.FlagArgs[k])
	}

	return slog.GroupValue(append(attrs,
		slog.String("subs", strings.Join(s.Subs, " ")),
		slog.String("flags", strings.Join(flags, ",")),
		slog.String("flag_args", strings.Join(flagArgs, ",")),
		slog.String("args", strings.Join(s.Args, " ")),
		slog.Bool("help", s.Help),
		slog.Bool("dashdash", s.Dashdash),
	)...)
}
