package suite

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error code constants, stable across CLI output formats.
const (
	ErrCodeNotFound   = "E001" // Path not found / not a directory
	ErrCodeNoFiles    = "E002" // No CUE files found
	ErrCodeParse      = "E003" // CUE parse/compile failed
	ErrCodeSchema     = "E004" // Schema unification/validation failed
	ErrCodeDecode     = "E005" // Decoding CUE into the suite model failed
	ErrCodeStructure  = "E006" // Structural rule violated (kind/settings mismatch, duplicate names)
	ErrCodePredicate  = "E007" // Test expression invalid
)

// LoadError is an error produced while loading or validating a suite file.
type LoadError struct {
	Code    string
	Message string
	File    string
	Pos     token.Pos // CUE position, when available
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
