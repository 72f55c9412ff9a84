package journal

// Phase identifies what a trace event records.
type Phase string

const (
	// PhaseRead records an observation of check state.
	PhaseRead Phase = "read"

	// PhaseAction records a corrective action attempt.
	PhaseAction Phase = "action"

	// PhaseOutcome records a per-check seek verdict.
	PhaseOutcome Phase = "outcome"

	// PhaseVerdict records the final suite-level verdict.
	PhaseVerdict Phase = "verdict"
)

// Run is one seek of one suite.
type Run struct {
	Token       string
	SuiteName   string
	SuiteHash   string
	StartedSeq  int64
	FinishedSeq int64 // zero until finished
	Converged   *bool // nil until finished
}

// Event is one step of a run's trace.
type Event struct {
	RunToken string
	Seq      int64
	Check    string
	Phase    Phase
	Detail   string // free-form JSON or plain text; may be empty
	Met      *bool  // verdict for outcome/verdict phases, nil otherwise
}
