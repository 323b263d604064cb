package store

import (
	"database/sql"
	"time"
)

// Run statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Run struct {
	ID              string
	Label           string // profile file name or "flags"
	Output          string
	MaxLeet         int
	IncludeCommon   bool
	IncludeKeyboard bool
	IncludePrefixes bool
	Workers         int
	ReferenceYear   int
	ProfileFields   int // number of non-empty profile fields, never their values
	Status          string
	BaseWords       int
	Lines           int64
	Bytes           int64
	Error           string
	StartedAt       time.Time
	FinishedAt      *time.Time
}

// RunParams describes a run when it starts.
type RunParams struct {
	Label           string
	Output          string
	MaxLeet         int
	IncludeCommon   bool
	IncludeKeyboard bool
	IncludePrefixes bool
	Workers         int
	ReferenceYear   int
	ProfileFields   int
}

// RunOutcome describes a run when it ends. A nil Err marks it completed.
type RunOutcome struct {
	BaseWords int
	Lines     int64
	Bytes     int64
	Err       error
}

const runColumns = `id, label, output, max_leet, include_common, include_keyboard, include_prefixes,
	workers, reference_year, profile_fields, status, base_words, lines, bytes, error, started_at, finished_at`

func (s *Store) StartRun(p RunParams) (*Run, error) {
	id := generateID()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, label, output, max_leet, include_common, include_keyboard, include_prefixes,
			workers, reference_year, profile_fields, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Label, p.Output, p.MaxLeet, p.IncludeCommon, p.IncludeKeyboard, p.IncludePrefixes,
		p.Workers, p.ReferenceYear, p.ProfileFields, StatusRunning, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}
	return s.GetRun(id)
}

func (s *Store) FinishRun(id string, o RunOutcome) error {
	status := StatusCompleted
	var errText *string
	if o.Err != nil {
		status = StatusFailed
		msg := o.Err.Error()
		errText = &msg
	}
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, base_words = ?, lines = ?, bytes = ?, error = ?, finished_at = ? WHERE id = ?`,
		status, o.BaseWords, o.Lines, o.Bytes, errText, time.Now().UTC(), id,
	)
	return err
}

func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs first, optionally filtered by status.
func (s *Store) ListRuns(limit int, status string) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE 1=1`
	args := []interface{}{}

	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY started_at DESC, rowid DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var r Run
	var errText sql.NullString
	if err := sc.Scan(&r.ID, &r.Label, &r.Output, &r.MaxLeet, &r.IncludeCommon, &r.IncludeKeyboard,
		&r.IncludePrefixes, &r.Workers, &r.ReferenceYear, &r.ProfileFields, &r.Status,
		&r.BaseWords, &r.Lines, &r.Bytes, &errText, &r.StartedAt, &r.FinishedAt); err != nil {
		return nil, err
	}
	r.Error = errText.String
	return &r, nil
}
