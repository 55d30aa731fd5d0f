package lang

import "slices"

// AST is the statement tree of a tabry source file.
type AST struct {
	Statements []Statement
}

// Statement is one statement of the tabry language. The concrete types are
// [*Cmd], [*Desc], [*Title], [*Include], [*Opts], [*Sub], [*Arg], [*Flag],
// [*DefArgs] and [*DefOpts].
type Statement interface {
	// Pos returns the position of the statement's first token.
	Pos() Position
	// Clone returns a deep copy of the statement.
	Clone() Statement

	statement()
}

// NameGroup is a primary name with its aliases, as in "verbose,v".
type NameGroup struct {
	Name    string
	Aliases []string
}

// Cmd names the command being described.
type Cmd struct {
	Name string
	At   Position
}

// Desc sets the description of the enclosing element.
type Desc struct {
	Text string
	At   Position
}

// Title is accepted inside arg blocks and otherwise ignored.
type Title struct {
	Text string
	At   Position
}

// Include references named defargs or defopts blocks.
type Include struct {
	Names []string
	At    Position
}

// OptsKind is the kind of an [Opts] statement.
type OptsKind int

const (
	OptsFile OptsKind = iota
	OptsDir
	OptsConst
	OptsShell
	OptsDelegate
)

// String returns the keyword of the kind.
func (k OptsKind) String() string {
	switch k {
	case OptsFile:
		return "file"
	case OptsDir:
		return "dir"
	case OptsConst:
		return "const"
	case OptsShell:
		return "shell"
	case OptsDelegate:
		return "delegate"
	default:
		return "unknown"
	}
}

// Opts declares a source of completion candidates. Values holds the
// literals of OptsConst; Command holds the command of OptsShell and
// OptsDelegate.
type Opts struct {
	Kind    OptsKind
	Values  []string
	Command string
	At      Position
}

// Sub declares one or more subcommands sharing the same body.
type Sub struct {
	Names       []NameGroup
	Description *string
	Includes    []string
	Body        []Statement
	At          Position
}

// Arg declares zero or more positional arguments sharing the same body.
type Arg struct {
	Names       []string
	Optional    bool
	Varargs     bool
	Description *string
	Includes    []string
	Body        []Statement
	At          Position
}

// Flag declares one or more flags sharing the same body.
type Flag struct {
	Names       []NameGroup
	Required    bool
	HasValue    bool
	Description *string
	Includes    []string
	Body        []Statement
	At          Position
}

// DefArgs declares a named, reusable group of subs, args and flags.
type DefArgs struct {
	Name string
	Body []Statement
	At   Position
}

// DefOpts declares a named, reusable list of options.
type DefOpts struct {
	Name string
	Body []Statement
	At   Position
}

func (s *Cmd) Pos() Position     { return s.At }
func (s *Desc) Pos() Position    { return s.At }
func (s *Title) Pos() Position   { return s.At }
func (s *Include) Pos() Position { return s.At }
func (s *Opts) Pos() Position    { return s.At }
func (s *Sub) Pos() Position     { return s.At }
func (s *Arg) Pos() Position     { return s.At }
func (s *Flag) Pos() Position    { return s.At }
func (s *DefArgs) Pos() Position { return s.At }
func (s *DefOpts) Pos() Position { return s.At }

func (*Cmd) statement()     {}
func (*Desc) statement()    {}
func (*Title) statement()   {}
func (*Include) statement() {}
func (*Opts) statement()    {}
func (*Sub) statement()     {}
func (*Arg) statement()     {}
func (*Flag) statement()    {}
func (*DefArgs) statement() {}
func (*DefOpts) statement() {}

func (s *Cmd) Clone() Statement {
	c := *s

	return &c
}

func (s *Desc) Clone() Statement {
	c := *s

	return &c
}

func (s *Title) Clone() Statement {
	c := *s

	return &c
}


func (s *Include) Clone() Statement {
	c := *s
	c.Names = slices.Clone(s.Names)

	return &c
}

func (s *Opts) Clone() Statement {
	c := *s
	c.Values = slices.Clone(s.Values)

	return &c
}

func (s *Sub) Clone() Statement {
	c := *s
	c.Names = cloneGroups(s.Names)
	c.Description = clonePtr(s.Description)
	c.Includes = slices.Clone(s.Includes)
	c.Body = cloneBody(s.Body)

	return &c
}

func (s *Arg) Clone() Statement {
	c := *s
	c.Names = slices.Clone(s.Names)
	c.Description = clonePtr(s.Description)
	c.Includes = slices.Clone(s.Includes)
	c.Body = cloneBody(s.Body)

	return &c
}

func (s *Flag) Clone() Statement {
	c := *s
	c.Names = cloneGroups(s.Names)
	c.Description = clonePtr(s.Description)
	c.Includes = slices.Clone(s.Includes)
	c.Body = cloneBody(s.Body)

	return &c
}

func (s *DefArgs) Clone() Statement {
	c := *s
	c.Body = cloneBody(s.Body)

	return &c
}

func (s *DefOpts) Clone() Statement {
	c := *s
	c.Body = cloneBody(s.Body)

	return &c
}

func cloneBody(body []Statement) []Statement {
	if body == nil {
		return nil
	}

	out := make([]Statement, len(body))
	for i, s := range body {
		out[i] = s.Clone()
	}

	return out
}

func cloneGroups(groups []NameGroup) []NameGroup {
	if groups == nil {
		return nil
	}

	out := make([]NameGroup, len(groups))
	for i, g := range groups {
		out[i] = NameGroup{Name: g.Name, Aliases: slices.Clone(g.Aliases)}
	}

	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
