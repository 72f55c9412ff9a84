package suite

// Strategy selects how top-level check outcomes combine.
type Strategy string

const (
	// StrategyAll seeks every check and ANDs the outcomes. Default.
	StrategyAll Strategy = "all"

	// StrategyAnd seeks checks in order, stopping at the first unmet.
	StrategyAnd Strategy = "and"

	// StrategyOr seeks checks in order, stopping at the first met.
	StrategyOr Strategy = "or"

	// StrategyAny seeks every check and ORs the outcomes.
	StrategyAny Strategy = "any"
)

// Suite is one declarative convergence target: an ordered list of checks and
// a combine strategy.
type Suite struct {
	Name     string   `json:"name"`
	Strategy Strategy `json:"strategy,omitempty"`
	Checks   []Check  `json:"checks"`
}

// Check is one unit of desired condition inside a suite.
type Check struct {
	Name string `json:"name"`
	Kind string `json:"kind"`

	// Exactly one of the settings blocks must be present, matching Kind.
	File    *FileSettings    `json:"file,omitempty"`
	Command *CommandSettings `json:"command,omitempty"`
	HTTP    *HTTPSettings    `json:"http,omitempty"`

	// Test is an optional CUE boolean expression replacing the kind's
	// default test. The expression sees `state`, `params`, and `input`.
	Test string `json:"test,omitempty"`

	// Before checks must converge before this check's corrective action may
	// run; After checks are sought only right after a successful correction.
	Before []Check `json:"before,omitempty"`
	After  []Check `json:"after,omitempty"`
}

// FileSettings configures a file check.
type FileSettings struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	MinSize int64  `json:"min_size,omitempty"`
}

// CommandSettings configures a probe-command check.
type CommandSettings struct {
	Probe []string `json:"probe"`
	Fix   []string `json:"fix,omitempty"`
	Dir   string   `json:"dir,omitempty"`
}

// HTTPSettings configures an HTTP probe check.
type HTTPSettings struct {
	URL          string `json:"url"`
	ExpectStatus int    `json:"expect_status,omitempty"`
}
