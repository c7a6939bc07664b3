// Package cli implements the cobra-based CLI commands for envlist.
//
// Each subcommand (list, get, first, show, exec) is defined in its own
// file within this package. This file defines the root command that serves
// as the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shinji-kodama/envlist/env"
	"github.com/shinji-kodama/envlist/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// outputFlag is the raw --output value, parsed into format before
	// any subcommand runs.
	outputFlag string

	// format is the parsed output format.
	format = model.OutputText

	// verbose enables debug logging to stderr.
	verbose bool

	// logger receives debug output from the CLI and the env package.
	// It stays a no-op logger unless --verbose is given.
	logger = zap.NewNop()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action; it provides help
// text and global flags. Functionality lives in the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "envlist",
		Short: "Inspect and edit delimited environment variables such as PATH",
		Long: `envlist reads list-style environment variables (PATH, LD_LIBRARY_PATH,
PSModulePath, ...) as ordered lists of elements, and runs commands with
elements prepended, appended, or removed.

Elements are separated by ';' on Windows and ':' everywhere else. Empty
elements are ignored, and an edit that leaves a list empty unsets the
variable instead of setting it to an empty string.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --output).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// PersistentPreRunE runs before every subcommand, so flag parsing
		// errors surface before any variable is touched.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := model.ParseOutputFormat(outputFlag)
			if err != nil {
				return model.WrapCLIError(model.ExitInvalidArgument, "invalid --output", err)
			}
			format = parsed
			setupLogger(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", string(model.OutputText), "Output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewGetCommand())
	rootCmd.AddCommand(NewFirstCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewExecCommand())

	return rootCmd
}

// setupLogger replaces the no-op logger with a development logger writing
// to w when --verbose is set.
func setupLogger(w io.Writer) {
	if !verbose {
		logger = zap.NewNop()
		return
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	logger = zap.New(core, zap.Development())
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		code := model.ExitCodeFor(err)
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(os.Stderr, cliErr.Message, cliErr.Err)
		} else {
			printError(os.Stderr, err.Error(), nil)
		}
		_ = logger.Sync()
		os.Exit(int(code))
	}
	_ = logger.Sync()
}

// printError outputs an error message in the appropriate format.
// Errors always go to stderr, even in JSON mode.
func printError(w io.Writer, message string, underlying error) {
	if format == model.OutputJSON {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog emits a debug message, visible only with --verbose.
func VerboseLog(format string, args ...interface{}) {
	logger.Sugar().Debugf(format, args...)
}

// newEnv returns an Env over a, logging through the CLI logger.
func newEnv(a env.Accessor) *env.Env {
	return env.New(env.WithAccessor(a), env.WithLogger(logger.Named("env")))
}
