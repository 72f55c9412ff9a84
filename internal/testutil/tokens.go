// Package testutil provides deterministic stand-ins for the journal's
// production token generator, so tests and golden traces are byte-stable.
package testutil

import (
	"fmt"
	"sync"
)

// FixedTokenGenerator always returns the same run token.
//
// Useful for scenarios where every seek in a test should share one token and
// the golden trace must not change between runs. Stateless and safe for
// concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a generator for token.
// An empty token defaults to "test-run-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token. Implements journal.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}

// SequenceTokenGenerator returns "test-run-1", "test-run-2", ... in order,
// for tests that seek more than once and need distinct but stable tokens.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceTokenGenerator struct {
	mu   sync.Mutex
	next int
}

// NewSequenceTokenGenerator creates a generator whose first token is
// "test-run-1".
func NewSequenceTokenGenerator() *SequenceTokenGenerator {
	return &SequenceTokenGenerator{}
}

// Generate returns the next token in the sequence.
// Implements journal.TokenGenerator.
func (g *SequenceTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("test-run-%d", g.next)
}
