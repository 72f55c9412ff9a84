package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedTokenGenerator(t *testing.T) {
	g := NewFixedTokenGenerator("test-run-7")
	assert.Equal(t, "test-run-7", g.Generate())
	assert.Equal(t, "test-run-7", g.Generate())
}

func TestFixedTokenGenerator_Default(t *testing.T) {
	g := NewFixedTokenGenerator("")
	assert.Equal(t, "test-run-default", g.Generate())
}

func TestSequenceTokenGenerator(t *testing.T) {
	g := NewSequenceTokenGenerator()
	assert.Equal(t, "test-run-1", g.Generate())
	assert.Equal(t, "test-run-2", g.Generate())
	assert.Equal(t, "test-run-3", g.Generate())
}
