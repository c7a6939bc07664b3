// list.go implements the "envlist list" command.
//
// The list command decomposes one variable into its elements and prints
// them with their indices, so "envlist list PATH" shows the search order.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/envlist/env"
)

// NewListCommand creates the "list" cobra command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <NAME>",
		Short: "Print the elements of a list variable",
		Long: `Print the elements of a delimited variable, one per line, in order.

An unset variable prints nothing and succeeds.

Examples:
  envlist list PATH
  envlist list -o json LD_LIBRARY_PATH`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0])
		},
	}
}

func runList(cmd *cobra.Command, name string) error {
	e := newEnv(env.OS())
	raw, found, err := e.Get(name)
	if err != nil {
		return err
	}
	l, err := e.Load(name)
	if err != nil {
		return err
	}
	VerboseLog("%s has %d elements", name, l.Len())

	result := variableResult{Name: name, Set: found, Value: raw, Elements: l.Values()}
	w := cmd.OutOrStdout()
	if done, err := printStructured(w, result); done {
		return err
	}
	for i, v := range l.All() {
		fmt.Fprintf(w, "%3d  %s\n", i, v)
	}
	return nil
}
