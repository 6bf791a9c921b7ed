package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/clevis/internal/audit"
	"github.com/mesh-intelligence/clevis/internal/dispatcher"
	"github.com/mesh-intelligence/clevis/internal/editor"
	"github.com/mesh-intelligence/clevis/internal/paths"
	"github.com/mesh-intelligence/clevis/internal/repository"
	"github.com/mesh-intelligence/clevis/internal/sqlite"
	"github.com/mesh-intelligence/clevis/internal/view"
	"github.com/spf13/cobra"
)

// session is one editing session: an empty repository behind an editor,
// the console view, and whichever audit sinks the configuration enables.
type session struct {
	dispatcher *dispatcher.Dispatcher
	view       *view.View
	audit      *audit.Logger
	journal    *sqlite.Journal
	logger     *slog.Logger
	jsonMode   bool
}

// openSession resolves configuration and wires a new session. The caller
// must Close the session.
func openSession(cmd *cobra.Command, opts *options) (*session, error) {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(cmd, configDir)
	if err != nil {
		return nil, userError(err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	s := &session{logger: logger, jsonMode: cfg.JSON}

	if cfg.Journal {
		dataDir, err := paths.ResolveDataDir(opts.dataDir, cfg.DataDir)
		if err != nil {
			return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
		}
		j, err := sqlite.Open(dataDir)
		if err != nil {
			logger.Error("open journal", "data_dir", dataDir, "error", err)
			return nil, sysError(err)
		}
		s.journal = j
		logger.Info("journal opened", "data_dir", dataDir, "session", j.SessionID())
	}

	var recorder dispatcher.Recorder
	if cfg.HTMLLog != "" || cfg.TextLog != "" || s.journal != nil {
		var sink audit.Journal
		if s.journal != nil {
			sink = s.journal
		}
		a, err := audit.Open(cfg.HTMLLog, cfg.TextLog, sink)
		if err != nil {
			logger.Error("open audit log", "html", cfg.HTMLLog, "txt", cfg.TextLog, "error", err)
			s.Close()
			return nil, sysError(err)
		}
		s.audit = a
		recorder = a
	}

	s.view = view.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.JSON)
	ed := editor.New(repository.New(), logger)
	s.dispatcher = dispatcher.New(ed, s.view, recorder, cfg.Tolerance, logger)
	return s, nil
}

// Close flushes the audit log and closes the journal.
func (s *session) Close() error {
	var errs []error
	if s.audit != nil {
		if err := s.audit.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close audit log: %w", err))
		}
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	return errors.Join(errs...)
}
