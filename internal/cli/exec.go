// exec.go implements the "envlist exec" command.
//
// The exec command copies the process environment into memory, applies the
// edits there, and runs the given command with the result as its
// environment. envlist's own environment is never modified. The command's
// exit status becomes envlist's.
package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/envlist/env"
	"github.com/shinji-kodama/envlist/internal/model"
)

// NewExecCommand creates the "exec" cobra command.
func NewExecCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "exec [flags] -- <command> [args...]",
		Short: "Run a command with edited list variables",
		Long: `Apply edits to the environment and run a command in it.

Edits are applied in this order: --profile, --set, --unset, --remove,
--prepend, --append. Elements already present in a list are moved, not
duplicated. The command itself is looked up in the edited PATH.

Examples:
  envlist exec --prepend PATH=/opt/go/bin -- go version
  envlist exec --profile dev.yaml -- make test`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, flags, args)
		},
	}
	flags.register(cmd)
	return cmd
}

func runExec(cmd *cobra.Command, flags *editFlags, args []string) error {
	environ := os.Environ()
	mem := env.NewMemory(environ)
	e := newEnv(mem)
	touched, err := flags.apply(e)
	if err != nil {
		return err
	}
	VerboseLog("Edited %s", strings.Join(touched, ", "))

	// #nosec G204 -- running the user's command is the purpose of exec
	child := exec.CommandContext(cmd.Context(), resolveCommand(e, args[0]), args[1:]...)
	child.Env = childEnviron(mem, environ)
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	VerboseLog("Running %s", strings.Join(args, " "))
	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return model.NewCLIError(model.ExitCode(exitErr.ExitCode()),
				fmt.Sprintf("%s exited with status %d", args[0], exitErr.ExitCode()))
		}
		return model.WrapCLIError(model.ExitCommandFailed, fmt.Sprintf("failed to run %s", args[0]), err)
	}
	return nil
}

// childEnviron returns the edited table plus the entries of environ whose
// key starts with '='. Windows keeps per-drive working directories in such
// entries ("=C:=C:\src"); no Accessor can name them, so they are carried
// over unchanged.
func childEnviron(mem *env.Memory, environ []string) []string {
	// Non-nil even when empty: a nil Env would inherit envlist's own.
	out := make([]string, 0, len(environ))
	for _, kv := range mem.Environ() {
		if !strings.HasPrefix(kv, "=") {
			out = append(out, kv)
		}
	}
	for _, kv := range environ {
		if strings.HasPrefix(kv, "=") {
			out = append(out, kv)
		}
	}
	return out
}

// resolveCommand looks name up in the edited PATH. Names containing a
// path separator, and names not found there, are returned unchanged and
// left to exec's own lookup.
func resolveCommand(e *env.Env, name string) string {
	if strings.ContainsAny(name, `/\`) {
		return name
	}
	l, err := e.Load("PATH")
	if err != nil {
		return name
	}
	for _, dir := range l.Values() {
		if dir == "." {
			continue
		}
		if path, err := exec.LookPath(filepath.Join(dir, name)); err == nil {
			return path
		}
	}
	return name
}
