package export

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/conciergesim/internal/content"
)

// Archive wraps a SQLite connection for message archival. Optional; the
// JSONL/text exports are the primary outputs.
type Archive struct {
	conn *sqlx.DB
}

// OpenArchive opens or creates a SQLite archive at the given path.
func OpenArchive(path string) (*Archive, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a := &Archive{conn: conn}
	if err := a.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return a, nil
}

// Close closes the archive connection.
func (a *Archive) Close() error {
	return a.conn.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		ts TEXT NOT NULL,
		sender TEXT NOT NULL,
		text TEXT NOT NULL,
		kind TEXT NOT NULL,
		initiated_by_member INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_ts ON messages(ts);
	CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender);
	`
	_, err := a.conn.Exec(schema)
	return err
}

// SaveMessages writes the full conversation to the archive (full replace).
func (a *Archive) SaveMessages(messages []content.Message) error {
	tx, err := a.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO messages
		(id, ts, sender, text, kind, initiated_by_member)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range messages {
		initiated := 0
		if m.InitiatedByMember {
			initiated = 1
		}
		_, err := stmt.Exec(
			m.ID().String(),
			m.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			m.Sender, m.Text, m.Kind(), initiated,
		)
		if err != nil {
			return fmt.Errorf("insert message %s: %w", m.ID(), err)
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in run metadata.
func (a *Archive) SaveMeta(key, value string) error {
	_, err := a.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a run metadata value.
func (a *Archive) GetMeta(key string) (string, error) {
	var value string
	err := a.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// CountMessages returns the number of archived messages.
func (a *Archive) CountMessages() (int, error) {
	var n int
	err := a.conn.Get(&n, "SELECT COUNT(*) FROM messages")
	return n, err
}
