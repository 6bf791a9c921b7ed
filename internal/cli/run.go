package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Execute editor commands from a file",
		Long: `Run executes the commands in a script file, one per line, in a fresh
session. A plain-text audit log from an earlier session is a valid script.
Failing commands are reported and execution continues; quit ends the script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, opts, args[0])
		},
	}
}

func runScript(cmd *cobra.Command, opts *options, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return userError(fmt.Errorf("open script: %w", err))
	}
	defer f.Close()

	s, err := openSession(cmd, opts)
	if err != nil {
		return err
	}

	runErr := s.dispatcher.Run(f)
	closeErr := s.Close()
	if runErr != nil {
		return sysError(runErr)
	}
	if closeErr != nil {
		return sysError(closeErr)
	}
	return nil
}
