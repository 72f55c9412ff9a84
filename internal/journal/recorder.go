package journal

import "context"

// Recorder stamps and appends trace events for one run. A nil Recorder
// discards everything, so callers can wire recording unconditionally.
type Recorder struct {
	journal *Journal
	clock   *Clock
	token   string
}

// NewRecorder creates a recorder for the given run token.
func NewRecorder(j *Journal, clock *Clock, token string) *Recorder {
	return &Recorder{journal: j, clock: clock, token: token}
}

// Token returns the run token this recorder stamps onto events.
func (r *Recorder) Token() string {
	if r == nil {
		return ""
	}
	return r.token
}

// Record appends one event with the next logical sequence number.
func (r *Recorder) Record(ctx context.Context, check string, phase Phase, detail string, met *bool) error {
	if r == nil {
		return nil
	}
	return r.journal.AppendEvent(ctx, Event{
		RunToken: r.token,
		Seq:      r.clock.Next(),
		Check:    check,
		Phase:    phase,
		Detail:   detail,
		Met:      met,
	})
}

// Read records a state observation.
func (r *Recorder) Read(ctx context.Context, check, detail string) error {
	return r.Record(ctx, check, PhaseRead, detail, nil)
}

// Action records a corrective action attempt.
func (r *Recorder) Action(ctx context.Context, check, detail string) error {
	return r.Record(ctx, check, PhaseAction, detail, nil)
}

// Outcome records a per-check verdict.
func (r *Recorder) Outcome(ctx context.Context, check string, met bool) error {
	return r.Record(ctx, check, PhaseOutcome, "", &met)
}

// Verdict records the suite-level verdict and finishes the run.
func (r *Recorder) Verdict(ctx context.Context, met bool) error {
	if r == nil {
		return nil
	}
	if err := r.Record(ctx, "", PhaseVerdict, "", &met); err != nil {
		return err
	}
	return r.journal.FinishRun(ctx, r.token, r.clock.Current(), met)
}
