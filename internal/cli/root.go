// Package cli implements the clevis command-line interface: the interactive
// editing session, script execution, and journal inspection.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// readyBanner is printed when an interactive session starts.
const readyBanner = "Clevis ready. Type commands or 'quit' to exit."

// options holds global flag values shared by all subcommands.
type options struct {
	configDir string
	dataDir   string
	htmlLog   string
	textLog   string
	logLevel  string
	tolerance float64
	jsonMode  bool
	journal   bool
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error returned by a command to a process exit code.
// Errors without an explicit code come from argument parsing.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "clevis" command with global flags and
// all subcommands registered. Running it without a subcommand starts an
// interactive session on standard input.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "clevis",
		Short: "An interactive 2D shape editor",
		Long: `Clevis reads editing commands line by line, maintains a set of named
shapes (rectangles, squares, circles, lines and groups), and answers
geometric queries about them.

Example:
  clevis --html log.html --txt log.txt
  clevis run session.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&opts.dataDir, "data-dir", "", "data directory for the journal (default: platform data dir)")
	pf.StringVar(&opts.htmlLog, flagHTML, "", "write an HTML audit log to this file")
	pf.StringVar(&opts.textLog, flagTXT, "", "write a plain-text audit log to this file")
	pf.StringVar(&opts.logLevel, flagLogLevel, "", "diagnostic log level: debug, info, warn, error")
	pf.Float64Var(&opts.tolerance, flagTolerance, 0, "point-coverage tolerance for shapeat")
	pf.BoolVar(&opts.jsonMode, flagJSON, false, "print results as JSON")
	pf.BoolVar(&opts.journal, flagJournal, false, "record commands in the SQLite journal")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newVersionCmd())
	root.AddCommand(newJournalCmd(opts))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	root.SetArgs(normalizeLegacyArgs(os.Args[1:]))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// normalizeLegacyArgs rewrites the single-dash -html and -txt options,
// matched case-insensitively, to their long flag form.
func normalizeLegacyArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		name, value, hasValue := strings.Cut(arg, "=")
		switch strings.ToLower(name) {
		case "-html":
			name = "--" + flagHTML
		case "-txt":
			name = "--" + flagTXT
		}
		if hasValue {
			out[i] = name + "=" + value
		} else {
			out[i] = name
		}
	}
	return out
}

// runInteractive prints the ready banner and processes commands from the
// command's input until quit or end of input.
func runInteractive(cmd *cobra.Command, opts *options) error {
	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}
	if !s.jsonMode {
		s.view.ShowMessage(readyBanner)
	}

	runErr := s.dispatcher.Run(cmd.InOrStdin())
	closeErr := s.Close()
	if runErr != nil {
		return sysError(runErr)
	}
	if closeErr != nil {
		return sysError(closeErr)
	}
	return nil
}
