// Package store keeps a local history of wordlist generation runs in SQLite.
// Only run metadata is recorded; profile values never reach the database.
package store

import (
	"database/sql"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			output TEXT NOT NULL,
			max_leet INTEGER NOT NULL,
			include_common INTEGER NOT NULL,
			include_keyboard INTEGER NOT NULL,
			include_prefixes INTEGER NOT NULL,
			workers INTEGER NOT NULL,
			reference_year INTEGER NOT NULL,
			profile_fields INTEGER NOT NULL,
			status TEXT NOT NULL,
			base_words INTEGER DEFAULT 0,
			lines INTEGER DEFAULT 0,
			bytes INTEGER DEFAULT 0,
			error TEXT,
			started_at DATETIME NOT NULL,
			finished_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

func generateID() string {
	return uuid.New().String()
}

func (s *Store) Close() error {
	return s.db.Close()
}
