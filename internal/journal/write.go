package journal

import (
	"context"
	"fmt"
)

// BeginRun records the start of a suite seek. The run's token must be unique;
// writing the same token twice is a defect, not an idempotent retry, so the
// constraint violation propagates.
func (j *Journal) BeginRun(ctx context.Context, run Run) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs (token, suite_name, suite_hash, started_seq)
		VALUES (?, ?, ?, ?)
	`, run.Token, run.SuiteName, run.SuiteHash, run.StartedSeq)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", run.Token, err)
	}
	return nil
}

// AppendEvent appends one trace event.
func (j *Journal) AppendEvent(ctx context.Context, ev Event) error {
	var met any
	if ev.Met != nil {
		met = boolToInt(*ev.Met)
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO events (run_token, seq, check_name, phase, detail, met)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.RunToken, ev.Seq, ev.Check, string(ev.Phase), ev.Detail, met)
	if err != nil {
		return fmt.Errorf("append event (run=%s, seq=%d): %w", ev.RunToken, ev.Seq, err)
	}
	return nil
}

// FinishRun records the final verdict of a run.
func (j *Journal) FinishRun(ctx context.Context, token string, seq int64, converged bool) error {
	res, err := j.db.ExecContext(ctx, `
		UPDATE runs SET finished_seq = ?, converged = ? WHERE token = ?
	`, seq, boolToInt(converged), token)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", token, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run %s: %w", token, err)
	}
	if n == 0 {
		return &NotFoundError{Token: token}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
