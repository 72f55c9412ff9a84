// Package checks provides the built-in goal collaborators the converge CLI
// wires into declarative suites: file presence/content, probe commands, and
// HTTP status probes.
//
// Each kind exposes a Spec constructor returning a goal.Spec so the suite
// builder can wrap reads and actions with journal recording, or swap the
// default test for a CUE predicate, before sealing the goal. The plain
// constructors are one-liners over the Specs for direct library use.
//
// Reads distinguish "not there yet" from defects: a missing probe binary or
// a connection refused is the failure signal (the condition cannot be
// determined right now), while a malformed URL or an unreadable file is a
// defect and propagates.
package checks
