package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/clevis/internal/paths"
	"github.com/mesh-intelligence/clevis/internal/sqlite"
	"github.com/spf13/cobra"
)

func newJournalCmd(opts *options) *cobra.Command {
	journal := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the command journal",
		Long:  "The journal records every command of sessions started with --journal, together with its outcome.",
	}

	var listSession string
	list := &cobra.Command{
		Use:   "list",
		Short: "List journal sessions, or the entries of one session",
		Long: `Without --session, list prints the stored session IDs, oldest first.
With --session, it prints that session's entries in execution order.

Example:
  clevis journal list
  clevis journal list --session 0190b6a2-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalList(cmd, opts, listSession)
		},
	}
	list.Flags().StringVar(&listSession, "session", "", "session ID whose entries to list")

	var exportSession string
	export := &cobra.Command{
		Use:   "export <file.jsonl>",
		Short: "Export journal entries as JSON lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalExport(cmd, opts, args[0], exportSession)
		},
	}
	export.Flags().StringVar(&exportSession, "session", "", "export only this session (default: all sessions)")

	journal.AddCommand(list, export)
	return journal
}

// openJournal opens the journal in the resolved data directory and reports
// whether JSON output is configured.
func openJournal(cmd *cobra.Command, opts *options) (*sqlite.Journal, bool, error) {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return nil, false, sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(cmd, configDir)
	if err != nil {
		return nil, false, userError(err)
	}
	dataDir, err := paths.ResolveDataDir(opts.dataDir, cfg.DataDir)
	if err != nil {
		return nil, false, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	j, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, false, sysError(err)
	}
	return j, cfg.JSON, nil
}

func runJournalList(cmd *cobra.Command, opts *options, sessionID string) error {
	j, jsonMode, err := openJournal(cmd, opts)
	if err != nil {
		return err
	}
	defer j.Close()

	out := cmd.OutOrStdout()
	if sessionID == "" {
		sessions, err := j.Sessions()
		if err != nil {
			return sysError(fmt.Errorf("list sessions: %w", err))
		}
		if jsonMode {
			return writeIndentedJSON(out, sessions)
		}
		for _, id := range sessions {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	entries, err := j.List(sessionID)
	if err != nil {
		return sysError(fmt.Errorf("list entries: %w", err))
	}
	if len(entries) == 0 {
		return userError(fmt.Errorf("no entries for session %q", sessionID))
	}
	if jsonMode {
		return writeIndentedJSON(out, entries)
	}
	for _, e := range entries {
		if e.Message != "" {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", e.Seq, e.Outcome, e.Command, e.Message)
			continue
		}
		fmt.Fprintf(out, "%d\t%s\t%s\n", e.Seq, e.Outcome, e.Command)
	}
	return nil
}

func runJournalExport(cmd *cobra.Command, opts *options, path, sessionID string) error {
	j, _, err := openJournal(cmd, opts)
	if err != nil {
		return err
	}
	defer j.Close()

	n, err := j.ExportJSONL(path, sessionID)
	if err != nil {
		return sysError(fmt.Errorf("export journal: %w", err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", n, path)
	return nil
}

func writeIndentedJSON(w io.Writer, value any) error {
	output, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(w, string(output))
	return nil
}
