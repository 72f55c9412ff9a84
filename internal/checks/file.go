package checks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/converge/goal"
)

// FileParams configures a file check.
type FileParams struct {
	// Path is the file to observe. Required.
	Path string

	// Content, when non-empty, is the desired file content. It enables the
	// corrective action (write the file) and tightens the default test to a
	// content digest match.
	Content string

	// MinSize is the minimum acceptable size in bytes.
	MinSize int64
}

// FileState is the observed state of a file check.
type FileState struct {
	Exists bool   `json:"exists"`
	Size   int64  `json:"size"`
	Mode   string `json:"mode,omitempty"`
	SHA256 string `json:"sha256,omitempty"`
}

// FileSpec builds the goal spec for a file check. A missing file is ordinary
// state (Exists false), not the failure signal: absence is a determinable
// condition.
func FileSpec(p FileParams) goal.Spec[Inputs, FileState] {
	spec := goal.Spec[Inputs, FileState]{
		Read: func(_ context.Context, _ Inputs) (FileState, error) {
			info, err := os.Stat(p.Path)
			if os.IsNotExist(err) {
				return FileState{}, nil
			}
			if err != nil {
				return FileState{}, fmt.Errorf("stat %s: %w", p.Path, err)
			}
			state := FileState{
				Exists: true,
				Size:   info.Size(),
				Mode:   info.Mode().String(),
			}
			data, err := os.ReadFile(p.Path)
			if err != nil {
				return FileState{}, fmt.Errorf("read %s: %w", p.Path, err)
			}
			sum := sha256.Sum256(data)
			state.SHA256 = hex.EncodeToString(sum[:])
			return state, nil
		},
		Test: func(_ Inputs, s FileState) bool {
			if !s.Exists || s.Size < p.MinSize {
				return false
			}
			if p.Content != "" {
				return s.SHA256 == contentDigest(p.Content)
			}
			return true
		},
	}

	if p.Content != "" {
		spec.Action = func(_ context.Context, _ Inputs) error {
			if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
				return fmt.Errorf("create parent of %s: %w", p.Path, err)
			}
			if err := os.WriteFile(p.Path, []byte(p.Content), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", p.Path, err)
			}
			return nil
		}
	}

	return spec
}

// File builds a file goal with the default test.
func File(p FileParams) *goal.Goal[Inputs, FileState] {
	return goal.New(FileSpec(p))
}

func contentDigest(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
