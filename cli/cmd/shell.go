package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	//go:embed shell/tabry.bash
	bashScript string
	//go:embed shell/tabry.fish
	fishScript string
)

// executable returns the path the shell integration invokes.
var executable = os.Executable //nolint:gochecknoglobals

// Bash prints the bash integration script.
type Bash struct {
	ImportsPath string `help:"Import path used by the completion function instead of $TABRY_IMPORT_PATH." name:"imports-path" placeholder:"PATH"`
	NoAuto      bool   `help:"Do not register completions for the commands on the import path."         name:"no-auto"`
}

// Run executes the bash command.
func (b *Bash) Run(out io.Writer) error {
	exe, err := executable()
	if err != nil {
		return ErrExecutable.Wrap(err)
	}

	var s strings.Builder

	if b.ImportsPath != "" {
		fmt.Fprintf(&s, "_tabry_imports_path=%s\n", quoteSh(b.ImportsPath))
	}

	fmt.Fprintf(&s, "_tabry_executable=%s\n", quoteSh(exe))
	s.WriteString(bashScript)

	if !b.NoAuto {
		s.WriteString("_tabry_complete_all\n")
	}

	_, err = io.WriteString(out, s.String())

	return err
}

// Fish prints the fish integration script.
type Fish struct {
	ImportsPath string `help:"Import path exported as TABRY_IMPORT_PATH." name:"imports-path" placeholder:"PATH"`
	NoAuto      bool   `help:"Do not register completions for the commands on the import path." name:"no-auto"`
}

// Run executes the fish command.
func (f *Fish) Run(out io.Writer) error {
	exe, err := executable()
	if err != nil {
		return ErrExecutable.Wrap(err)
	}

	var s strings.Builder

	if f.ImportsPath != "" {
		fmt.Fprintf(&s, "set -x TABRY_IMPORT_PATH %s\n", quoteFish(f.ImportsPath))
	}

	fmt.Fprintf(&s, "set -g _tabry_executable %s\n", quoteFish(exe))
	s.WriteString(fishScript)

	if !f.NoAuto {
		s.WriteString("tabry_completion_init_all\n")
	}

	_, err = io.WriteString(out, s.String())

	return err
}

// quoteSh single-quotes s for POSIX shells.
func quoteSh(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// quoteFish single-quotes s for fish, where backslash and quote are escaped
// inside single quotes.
func quoteFish(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}
