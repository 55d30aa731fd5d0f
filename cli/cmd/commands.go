package cmd

import (
	"bufio"
	"io"

	"github.com/ardnew/tabry/locate"
)

// Commands lists the commands that have a config on the import path.
type Commands struct{}

// Run executes the commands command.
func (Commands) Run(loc *locate.Locator, out io.Writer) error {
	w := bufio.NewWriter(out)

	for _, cmd := range loc.Commands() {
		w.WriteString(cmd)
		w.WriteByte('\n')
	}

	return w.Flush()
}
