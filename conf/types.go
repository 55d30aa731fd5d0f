package conf

// OptType identifies the source of completion candidates described by an
// [Opt].
type OptType string

const (
	OptFile     OptType = "file"
	OptDir      OptType = "dir"
	OptConst    OptType = "const"
	OptDelegate OptType = "delegate"
	OptShell    OptType = "shell"
	OptInclude  OptType = "include"
)

// Opt is a single option provider.
//
// Value holds the literal for [OptConst], the command for [OptShell] and
// [OptDelegate], and the option include name for [OptInclude]. It is empty
// for [OptFile] and [OptDir].
type Opt struct {
	Type  OptType `json:"type"`
	Value string  `json:"value,omitempty"`
}

// ConcreteArg is a positional argument.
type ConcreteArg struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Options     []Opt  `json:"options,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Varargs     bool   `json:"varargs,omitempty"`
}

// ConcreteFlag is a flag, optionally taking a value (Arg).
type ConcreteFlag struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Options     []Opt    `json:"options,omitempty"`
	Description string   `json:"description,omitempty"`
	Arg         bool     `json:"arg,omitempty"`
	Required    bool     `json:"required,omitempty"`
}

// Tokens returns the command-line spellings of the flag and its aliases.
func (f *ConcreteFlag) Tokens() []string {
	tokens := make([]string, 0, 1+len(f.Aliases))
	tokens = append(tokens, FlagToken(f.Name))

	for _, alias := range f.Aliases {
		tokens = append(tokens, FlagToken(alias))
	}

	return tokens
}

// FlagToken returns the command-line spelling of a flag name: "-x" for
// single-character names and "--name" otherwise.
func FlagToken(name string) string {
	if len(name) == 1 {
		return "-" + name
	}

	return "--" + name
}

// ConcreteSub is a subcommand. Only [Conf.Main] may be nameless.
type ConcreteSub struct {
	Name        string                `json:"name,omitempty"`
	Aliases     []string              `json:"aliases,omitempty"`
	Description string                `json:"description,omitempty"`
	Args        []Entry[ConcreteArg]  `json:"args,omitempty"`
	Flags       []Entry[ConcreteFlag] `json:"flags,omitempty"`
	Subs        []Entry[ConcreteSub]  `json:"subs,omitempty"`
	Includes    []string              `json:"includes,omitempty"`
}

// Matches reports whether name is the sub's name, or one of its aliases when
// checkAliases is set.
func (s *ConcreteSub) Matches(name string, checkAliases bool) bool {
	if s.Name == name {
		return true
	}

	if checkAliases {
		for _, alias := range s.Aliases {
			if alias == name {
				return true
			}
		}
	}

	return false
}

// Arg, Flag and Sub are either a reference to an [ArgInclude] or a concrete
// value.
type (
	Arg  = Entry[ConcreteArg]
	Flag = Entry[ConcreteFlag]
	Sub  = Entry[ConcreteSub]
)

// ArgInclude is a named, reusable group of args, flags and subs, declared
// with defargs.
type ArgInclude struct {
	Args     []Entry[ConcreteArg]  `json:"args,omitempty"`
	Flags    []Entry[ConcreteFlag] `json:"flags,omitempty"`
	Subs     []Entry[ConcreteSub]  `json:"subs,omitempty"`
	Includes []string              `json:"includes,omitempty"`
}

// Conf is a compiled command configuration.
type Conf struct {
	Cmd            string                 `json:"cmd,omitempty"`
	Main           ConcreteSub            `json:"main"`
	ArgIncludes    map[string]*ArgInclude `json:"arg_includes,omitempty"`
	OptionIncludes map[string][]Opt       `json:"option_includes,omitempty"`
}

// New returns an empty Conf ready to be populated.
func New() *Conf {
	return &Conf{
		ArgIncludes:    make(map[string]*ArgInclude),
		OptionIncludes: make(map[string][]Opt),
	}
}
