// show.go implements the "envlist show" command.
//
// The show command previews edits. It copies the process environment into
// memory, applies the profile and edit flags there, and prints the
// resulting values of every touched variable. The process environment is
// never modified.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/envlist/env"
)

// NewShowCommand creates the "show" cobra command.
func NewShowCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Preview the variables produced by a set of edits",
		Long: `Apply edits to a copy of the current environment and print the
resulting value of each touched variable.

Examples:
  envlist show --prepend PATH=/opt/go/bin
  envlist show --profile dev.jsonc -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, flags *editFlags) error {
	e := newEnv(env.NewMemory(os.Environ()))
	touched, err := flags.apply(e)
	if err != nil {
		return err
	}

	results := make([]variableResult, 0, len(touched))
	for _, name := range touched {
		raw, found, err := e.Get(name)
		if err != nil {
			return err
		}
		l, err := e.Load(name)
		if err != nil {
			return err
		}
		results = append(results, variableResult{Name: name, Set: found, Value: raw, Elements: l.Values()})
	}

	w := cmd.OutOrStdout()
	if done, err := printStructured(w, results); done {
		return err
	}
	for _, r := range results {
		if r.Set {
			fmt.Fprintf(w, "%s=%s\n", r.Name, r.Value)
		} else {
			fmt.Fprintf(w, "%s (unset)\n", r.Name)
		}
	}
	return nil
}
