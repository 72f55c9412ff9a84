package checks

// Inputs carries the run-time key/value inputs a caller passes to a suite
// run. It is the goal context type for every built-in check: static check
// parameters are baked into the goal at build time, inputs vary per seek.
type Inputs map[string]any
