// Package audit records every command issued in a session. Commands are
// written to an HTML table log and a plain text log (one command per line,
// replayable with "clevis run"), and optionally appended to a journal.
package audit

import (
	"bufio"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"sync"

	"github.com/mesh-intelligence/clevis/pkg/types"
)

// ErrClosed is returned by Record after Close.
var ErrClosed = errors.New("audit logger is closed")

const (
	htmlHeader = "<html>\n<head><meta charset=\"utf-8\"><title>Clevis Log</title></head>\n" +
		"<body>\n<table border=\"1\">\n" +
		"  <tr><th>#</th><th>Command</th></tr>\n"
	htmlFooter = "</table>\n</body>\n</html>\n"
)

// Journal stores commands with their outcome. internal/sqlite provides the
// SQLite implementation.
type Journal interface {
	Append(command, outcome, message string) error
}

// Logger writes the audit trail. Any of the sinks may be absent.
type Logger struct {
	mu      sync.Mutex
	html    *bufio.Writer
	text    *bufio.Writer
	closers []io.Closer
	journal Journal
	counter int
	closed  bool
}

// New creates a Logger over the given writers and writes the HTML header.
// A nil writer or journal disables that sink.
func New(htmlW, textW io.Writer, journal Journal) (*Logger, error) {
	l := &Logger{journal: journal}
	if htmlW != nil {
		l.html = bufio.NewWriter(htmlW)
		if _, err := l.html.WriteString(htmlHeader); err != nil {
			return nil, fmt.Errorf("write html header: %w", err)
		}
	}
	if textW != nil {
		l.text = bufio.NewWriter(textW)
	}
	return l, nil
}

// Open creates (or truncates) the log files at htmlPath and textPath and
// returns a Logger writing to them. An empty path disables that sink.
func Open(htmlPath, textPath string, journal Journal) (*Logger, error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	var htmlW, textW io.Writer
	if htmlPath != "" {
		f, err := os.Create(htmlPath)
		if err != nil {
			return nil, fmt.Errorf("create html log: %w", err)
		}
		closers = append(closers, f)
		htmlW = f
	}
	if textPath != "" {
		f, err := os.Create(textPath)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("create text log: %w", err)
		}
		closers = append(closers, f)
		textW = f
	}

	l, err := New(htmlW, textW, journal)
	if err != nil {
		closeAll()
		return nil, err
	}
	l.closers = closers
	return l, nil
}

// Record appends command to every sink and flushes the file sinks. The
// journal also receives the outcome kind and message of the command.
func (l *Logger) Record(command string, outcome error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	l.counter++

	if l.html != nil {
		if _, err := fmt.Fprintf(l.html, "  <tr><td>%d</td><td>%s</td></tr>\n", l.counter, html.EscapeString(command)); err != nil {
			return fmt.Errorf("write html log: %w", err)
		}
		if err := l.html.Flush(); err != nil {
			return fmt.Errorf("flush html log: %w", err)
		}
	}
	if l.text != nil {
		if _, err := l.text.WriteString(command + "\n"); err != nil {
			return fmt.Errorf("write text log: %w", err)
		}
		if err := l.text.Flush(); err != nil {
			return fmt.Errorf("flush text log: %w", err)
		}
	}
	if l.journal != nil {
		message := ""
		if outcome != nil {
			message = outcome.Error()
		}
		if err := l.journal.Append(command, types.ErrorKind(outcome), message); err != nil {
			return fmt.Errorf("append journal: %w", err)
		}
	}
	return nil
}

// Count returns the number of commands recorded so far.
func (l *Logger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counter
}

// Close writes the HTML footer, flushes, and closes any files opened by
// Open. Close is idempotent. The journal is owned by the caller and is not
// closed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	if l.html != nil {
		if _, err := l.html.WriteString(htmlFooter); err != nil {
			errs = append(errs, fmt.Errorf("write html footer: %w", err))
		}
		if err := l.html.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush html log: %w", err))
		}
	}
	if l.text != nil {
		if err := l.text.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush text log: %w", err))
		}
	}
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
