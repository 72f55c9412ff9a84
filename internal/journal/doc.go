// Package journal provides SQLite-backed durable storage for seek traces.
//
// Every run of a suite gets a run token; every observable step of the seek
// (reads, corrective actions, per-check outcomes, the final verdict) is
// appended as an event stamped with a monotonic logical sequence number.
// Ordering always uses seq, never wall-clock timestamps, so a trace reads
// back in exactly the order the engine produced it.
//
// The database is configured with WAL mode, NORMAL synchronous, a 5-second
// busy timeout, and foreign key enforcement. Connections are capped at a
// single writer to avoid SQLITE_BUSY under concurrent suite runs.
//
// The journal is an external collaborator of the goal engine: the engine
// itself records nothing. Suite builders wrap check read/action closures
// with a Recorder to emit events.
package journal
