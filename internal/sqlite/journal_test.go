package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournal(t *testing.T, dir string) *Journal {
	t.Helper()
	j, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	j := openJournal(t, dir)

	_, err := os.Stat(filepath.Join(dir, JournalFileName))
	assert.NoError(t, err)

	_, err = uuid.Parse(j.SessionID())
	assert.NoError(t, err)
}

func TestAppendAndList(t *testing.T) {
	j := openJournal(t, t.TempDir())

	require.NoError(t, j.Append("circle c 0 0 1", "ok", ""))
	require.NoError(t, j.Append("circle c 0 0 1", "DuplicateName", "shape name already exists: c"))

	entries, err := j.List(j.SessionID())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Seq)
	assert.Equal(t, 2, entries[1].Seq)
	assert.Equal(t, "ok", entries[0].Outcome)
	assert.Equal(t, "DuplicateName", entries[1].Outcome)
	assert.Equal(t, "shape name already exists: c", entries[1].Message)
	assert.Equal(t, j.SessionID(), entries[1].SessionID)
	assert.NotEqual(t, entries[0].EntryID, entries[1].EntryID)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestSessionsPersistAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, first.Append("square s 0 0 1", "ok", ""))
	require.NoError(t, first.Close())

	second := openJournal(t, dir)
	require.NoError(t, second.Append("quit", "ok", ""))

	sessions, err := second.Sessions()
	require.NoError(t, err)
	assert.Equal(t, []string{first.SessionID(), second.SessionID()}, sessions)

	all, err := second.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := second.List(second.SessionID())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "quit", mine[0].Command)
}

func TestClosedJournal(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, j.Close())
	require.NoError(t, j.Close(), "close is idempotent")

	assert.ErrorIs(t, j.Append("quit", "ok", ""), ErrJournalClosed)
	_, err = j.List("")
	assert.ErrorIs(t, err, ErrJournalClosed)
	_, err = j.Sessions()
	assert.ErrorIs(t, err, ErrJournalClosed)
}

func TestExportJSONL(t *testing.T) {
	dir := t.TempDir()
	j := openJournal(t, dir)
	require.NoError(t, j.Append("line l 0 0 1 1", "ok", ""))
	require.NoError(t, j.Append("delete x", "UnknownShape", "undefined shape: x"))

	path := filepath.Join(dir, "journal.jsonl")
	n, err := j.ExportJSONL(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		got = append(got, e)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, got, 2)
	assert.Equal(t, "delete x", got[1].Command)
	assert.Equal(t, "UnknownShape", got[1].Outcome)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temp file is renamed into place")
}
