package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Snapshot is a sqlite-backed local copy of a candidate stream, keyed
// by source position. It lets the filter run offline against a corpus
// that was fetched once.
type Snapshot struct {
	db *sql.DB
}

// OpenSnapshot opens (creating if needed) a snapshot database with WAL
// mode enabled.
func OpenSnapshot(ctx context.Context, path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS candidates (
	position INTEGER PRIMARY KEY,
	title TEXT,
	record_json TEXT NOT NULL
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Snapshot{db: db}, nil
}

// Close closes the database connection.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// Put stores a candidate at its source position, replacing any
// previous record at that position.
func (s *Snapshot) Put(ctx context.Context, position int, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO candidates (position, title, record_json) VALUES (?, ?, ?)`,
		position, rec.Title, string(data))
	return err
}

// Len returns the number of stored candidates.
func (s *Snapshot) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	return n, err
}

// Scan returns a Source over the stored candidates in position order.
// The returned source holds a cursor on the database; draining it (or
// hitting an error) releases the cursor.
func (s *Snapshot) Scan(ctx context.Context) (Source, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_json FROM candidates ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	return &snapshotSource{rows: rows}, nil
}

// Tee wraps a source so that every record it yields is also written
// to the snapshot at its source position. The filter's early
// termination bounds how much gets snapshotted.
func Tee(src Source, snap *Snapshot) Source {
	return &teeSource{src: src, snap: snap}
}

type teeSource struct {
	src  Source
	snap *Snapshot
	pos  int
}

func (t *teeSource) Next(ctx context.Context) (Record, bool, error) {
	rec, ok, err := t.src.Next(ctx)
	if err != nil || !ok {
		return rec, ok, err
	}
	if err := t.snap.Put(ctx, t.pos, rec); err != nil {
		return Record{}, false, err
	}
	t.pos++
	return rec, true, nil
}

type snapshotSource struct {
	rows *sql.Rows
	done bool
}

func (s *snapshotSource) Next(ctx context.Context) (Record, bool, error) {
	if s.done {
		return Record{}, false, nil
	}
	if !s.rows.Next() {
		s.done = true
		if err := s.rows.Err(); err != nil {
			return Record{}, false, err
		}
		return Record{}, false, s.rows.Close()
	}

	var data string
	if err := s.rows.Scan(&data); err != nil {
		s.done = true
		s.rows.Close()
		return Record{}, false, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		s.done = true
		s.rows.Close()
		return Record{}, false, fmt.Errorf("snapshot record: %w", err)
	}
	return rec, true, nil
}
