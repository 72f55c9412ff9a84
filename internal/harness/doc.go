// Package harness runs conformance scenarios against the suite runner.
//
// A scenario is a YAML file naming a suite, the inputs to seek it with, any
// files to lay down first, and the expected verdict. Every scenario runs in
// an isolated working directory with a fixed run token and a fresh journal,
// so the recorded trace is byte-stable and can be compared against a golden
// file.
//
// Suite sources may reference the scenario's working directory as @workdir@;
// the harness substitutes the real path before compiling and folds it back
// when rendering traces.
package harness
