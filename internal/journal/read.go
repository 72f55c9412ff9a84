package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReadRun returns the run record for a token.
// Returns a NotFoundError if no such run exists.
func (j *Journal) ReadRun(ctx context.Context, token string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT token, suite_name, suite_hash, started_seq, finished_seq, converged
		FROM runs
		WHERE token = ?
	`, token)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, &NotFoundError{Token: token}
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", token, err)
	}
	return run, nil
}

// ListRuns returns every run, oldest first.
// Returns an empty slice (not nil) for an empty journal.
func (j *Journal) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT token, suite_name, suite_hash, started_seq, finished_seq, converged
		FROM runs
		ORDER BY started_seq ASC, token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadTrace returns the full event trace of a run in deterministic order:
// ORDER BY seq ASC, id ASC.
// Returns a NotFoundError if the run does not exist; an existing run with no
// events yields an empty slice.
func (j *Journal) ReadTrace(ctx context.Context, token string) ([]Event, error) {
	if _, err := j.ReadRun(ctx, token); err != nil {
		return nil, err
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT run_token, seq, check_name, phase, detail, met
		FROM events
		WHERE run_token = ?
		ORDER BY seq ASC, id ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query trace %s: %w", token, err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var ev Event
		var met sql.NullInt64
		if err := rows.Scan(&ev.RunToken, &ev.Seq, &ev.Check, (*string)(&ev.Phase), &ev.Detail, &met); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if met.Valid {
			b := met.Int64 != 0
			ev.Met = &b
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace %s: %w", token, err)
	}
	return events, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var finished sql.NullInt64
	var converged sql.NullInt64
	if err := s.Scan(&run.Token, &run.SuiteName, &run.SuiteHash, &run.StartedSeq, &finished, &converged); err != nil {
		return Run{}, err
	}
	if finished.Valid {
		run.FinishedSeq = finished.Int64
	}
	if converged.Valid {
		b := converged.Int64 != 0
		run.Converged = &b
	}
	return run, nil
}
