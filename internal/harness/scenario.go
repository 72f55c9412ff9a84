package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a suite to seek, the run-time
// inputs, optional setup files, and the verdict the seek must reach.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario exercises.
	Description string `yaml:"description"`

	// Suite is the path to the suite's CUE file, relative to the scenario
	// file. The source may reference @workdir@.
	Suite string `yaml:"suite"`

	// Inputs are passed to every check predicate as the input scope.
	Inputs map[string]any `yaml:"inputs,omitempty"`

	// Setup files are written into the working directory before the seek.
	Setup []SetupFile `yaml:"setup,omitempty"`

	// ExpectConverged is the verdict the seek must reach.
	ExpectConverged bool `yaml:"expect_converged"`

	// RunToken fixes the run token for deterministic traces.
	// Empty defaults to "test-run-default".
	RunToken string `yaml:"run_token,omitempty"`
}

// SetupFile is one file laid down before the seek.
type SetupFile struct {
	// Path is relative to the scenario's working directory.
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// LoadScenario reads and validates a scenario YAML file. The suite path is
// resolved relative to the scenario file. Unknown fields are rejected so
// typos fail loudly instead of silently dropping a clause.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if !filepath.IsAbs(sc.Suite) && sc.Suite != "" {
		sc.Suite = filepath.Join(filepath.Dir(path), sc.Suite)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Suite == "" {
		return fmt.Errorf("suite is required")
	}
	if _, err := os.Stat(s.Suite); err != nil {
		return fmt.Errorf("suite file: %w", err)
	}
	for i, f := range s.Setup {
		if f.Path == "" {
			return fmt.Errorf("setup[%d]: path is required", i)
		}
		if filepath.IsAbs(f.Path) {
			return fmt.Errorf("setup[%d]: path must be relative to the working directory", i)
		}
	}
	return nil
}
