package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ardnew/tabry/pkg"
)

// Shell runs command with the given extra environment and returns its
// standard output.
type Shell func(ctx context.Context, command string, env []string) ([]byte, error)

// ExecShell runs command with "sh -c", inheriting the process environment.
func ExecShell(ctx context.Context, command string, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Env = append(os.Environ(), env...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, ErrShell.Wrap(err).With(
			slog.String("command", command),
			slog.String("stderr", string(bytes.TrimSpace(stderr.Bytes()))))
	}

	return out, nil
}

// autocompleteState is the parse state exported to shell options.
type autocompleteState struct {
	Cmd      *string           `json:"cmd"`
	Flags    map[string]bool   `json:"flags"`
	FlagArgs map[string]string `json:"flag_args"`
	Args     []string          `json:"args"`
}

// shellEnv returns the environment that exposes r to a shell option.
func shellEnv(r *Result) ([]string, error) {
	st := autocompleteState{
		Flags:    r.State.Flags,
		FlagArgs: r.State.FlagArgs,
		Args:     r.State.Args,
	}

	if r.Conf.Cmd != "" {
		st.Cmd = &r.Conf.Cmd
	}

	if st.Flags == nil {
		st.Flags = map[string]bool{}
	}

	if st.FlagArgs == nil {
		st.FlagArgs = map[string]string{}
	}

	if st.Args == nil {
		st.Args = []string{}
	}

	data, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}

	return []string{pkg.EnvAutocompleteState + "=" + string(data)}, nil
}
