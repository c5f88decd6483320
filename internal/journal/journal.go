// Package journal keeps a log of completed check-ins in SQLite.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/SoarinFerret/kensho/internal/clock"
)

const FileName = "journal.db"

const isoDate = "2006-01-02"

// Entry is one check-in.
type Entry struct {
	At              time.Time
	Date            string
	ClockKey        string
	ClockName       string
	DurationMinutes float64
}

type Store struct {
	db     *sql.DB
	source clock.Source
}

// Open opens or creates the journal database at path.
func Open(path string, src clock.Source) (*Store, error) {
	if src == nil {
		src = clock.SystemSource{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; the engine records from a single goroutine at a time
	db.SetMaxOpenConns(1)

	s := &Store{db: db, source: src}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS check_ins (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  timestamp TEXT NOT NULL,
  date TEXT NOT NULL,
  clock_key TEXT NOT NULL,
  clock_name TEXT NOT NULL,
  duration_minutes REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS check_ins_date ON check_ins(date);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create check_ins table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends e. A zero At means now; an empty Date is derived from At.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = s.source.Now()
	}
	if e.Date == "" {
		e.Date = e.At.Format(isoDate)
	}
	const stmt = `
INSERT INTO check_ins (timestamp, date, clock_key, clock_name, duration_minutes)
VALUES (?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		e.At.Format(time.RFC3339Nano),
		e.Date,
		e.ClockKey,
		e.ClockName,
		max(e.DurationMinutes, 0),
	)
	if err != nil {
		return fmt.Errorf("record check-in: %w", err)
	}
	return nil
}

// Today lists today's check-ins, newest first.
func (s *Store) Today(ctx context.Context) ([]Entry, error) {
	const query = `
SELECT timestamp, date, clock_key, clock_name, duration_minutes
FROM check_ins
WHERE date = ?
ORDER BY timestamp DESC, id DESC;
`
	rows, err := s.db.QueryContext(ctx, query, s.today())
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&ts, &e.Date, &e.ClockKey, &e.ClockName, &e.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		if e.At, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check-ins: %w", err)
	}
	return entries, nil
}

// TotalMinutesToday sums the durations of today's check-ins.
func (s *Store) TotalMinutesToday(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration_minutes), 0) FROM check_ins WHERE date = ?`,
		s.today(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum check-ins: %w", err)
	}
	return total, nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM check_ins`); err != nil {
		return fmt.Errorf("clear check-ins: %w", err)
	}
	return nil
}

func (s *Store) today() string {
	return s.source.Now().Format(isoDate)
}
