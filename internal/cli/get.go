// get.go implements the "envlist get" and "envlist first"
// commands, which print a raw value or its first element.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/envlist/env"
	"github.com/shinji-kodama/envlist/internal/model"
)

// NewGetCommand creates the "get" cobra command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <NAME>",
		Short: "Print the raw value of a variable",
		Long: `Print the raw value of a variable exactly as stored.

Exits with status 3 when the variable is not set.

Examples:
  envlist get HOME
  envlist get -o yaml PATH`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEnv(env.OS())
			raw, found, err := e.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				return model.NewCLIError(model.ExitVarNotFound, fmt.Sprintf("%s is not set", args[0]))
			}
			return printValue(cmd, variableResult{Name: args[0], Set: true, Value: raw})
		},
	}
}

// NewFirstCommand creates the "first" cobra command.
func NewFirstCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "first <NAME>",
		Short: "Print the first element of a list variable",
		Long: `Print the first non-empty element of a delimited variable.

Useful for variables such as GOPATH that may hold several entries when
only the primary one matters. Exits with status 3 when the variable is
unset or holds no element.

Examples:
  envlist first GOPATH`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEnv(env.OS())
			first, found, err := e.First(args[0])
			if err != nil {
				return err
			}
			if !found {
				return model.NewCLIError(model.ExitVarNotFound, fmt.Sprintf("%s has no element", args[0]))
			}
			return printValue(cmd, variableResult{Name: args[0], Set: true, Value: first})
		},
	}
}

func printValue(cmd *cobra.Command, result variableResult) error {
	w := cmd.OutOrStdout()
	if done, err := printStructured(w, result); done {
		return err
	}
	_, err := fmt.Fprintln(w, result.Value)
	return err
}
