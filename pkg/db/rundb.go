package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yumyai/skdist/internal/util"

	_ "modernc.org/sqlite"
)

var ErrRunNotFound = errors.New("run not found")

// fixed width so created_at sorts as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one resolved invocation as stored in the manifest.
type Run struct {
	ID        uuid.UUID
	Mode      string
	Threads   int
	CreatedAt time.Time
	Params    string // YAML of the resolved configuration
}

// RunDB is the sqlite manifest of resolved invocations.
type RunDB struct {
	db *sql.DB
}

const runSchema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id     TEXT PRIMARY KEY,
		mode       TEXT NOT NULL,
		threads    INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		params     TEXT NOT NULL
	);
`

func NewRunDB(path string) (*RunDB, error) {

	if err := util.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("failed to create manifest folder: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}

	if _, err := db.Exec(runSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create manifest schema: %w", err)
	}

	return &RunDB{db: db}, nil
}

func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

func (rdb *RunDB) Record(ctx context.Context, run Run) error {

	stm, err := rdb.db.PrepareContext(ctx,
		`INSERT INTO runs (run_id, mode, threads, created_at, params) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stm.Close()

	_, err = stm.ExecContext(ctx, run.ID.String(), run.Mode, run.Threads,
		run.CreatedAt.UTC().Format(timeLayout), run.Params)
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}

	return nil
}

func (rdb *RunDB) Get(ctx context.Context, id uuid.UUID) (*Run, error) {

	row := rdb.db.QueryRowContext(ctx,
		`SELECT run_id, mode, threads, created_at, params FROM runs WHERE run_id == ?`, id.String())

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// List returns every recorded run, newest first.
func (rdb *RunDB) List(ctx context.Context) ([]*Run, error) {

	rows, err := rdb.db.QueryContext(ctx,
		`SELECT run_id, mode, threads, created_at, params FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		r       Run
		id      string
		created string
	)
	if err := s.Scan(&id, &r.Mode, &r.Threads, &created, &r.Params); err != nil {
		return nil, err
	}

	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("bad run id %q: %w", id, err)
	}
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("bad timestamp %q: %w", created, err)
	}

	return &r, nil
}
