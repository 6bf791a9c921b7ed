package sqlite

// Schema DDL for the command journal.
const (
	createJournal = `CREATE TABLE IF NOT EXISTS journal (
    entry_id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    command TEXT NOT NULL,
    outcome TEXT NOT NULL,
    message TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	idxJournalSession = `CREATE INDEX IF NOT EXISTS idx_journal_session ON journal(session_id, seq);`
	idxJournalOutcome = `CREATE INDEX IF NOT EXISTS idx_journal_outcome ON journal(outcome);`
)

// schemaDDL lists the statements executed on Open, in order.
var schemaDDL = []string{
	createJournal,
	idxJournalSession,
	idxJournalOutcome,
}
