package suite

import "fmt"

// Validate enforces the structural rules the CUE schema cannot express:
// the settings block must match the declared kind, exactly one settings
// block per check, and check names must be unique across the whole suite
// (nested before/after checks included, since they share the journal's
// check-name namespace).
func Validate(s Suite) []*LoadError {
	var errs []*LoadError
	seen := map[string]bool{}

	var walk func(path string, c Check)
	walk = func(path string, c Check) {
		if seen[c.Name] {
			errs = append(errs, structureErr("%s: duplicate check name %q", path, c.Name))
		}
		seen[c.Name] = true

		blocks := 0
		if c.File != nil {
			blocks++
			if c.Kind != "file" {
				errs = append(errs, structureErr("%s: file settings on kind %q", path, c.Kind))
			}
		}
		if c.Command != nil {
			blocks++
			if c.Kind != "command" {
				errs = append(errs, structureErr("%s: command settings on kind %q", path, c.Kind))
			}
		}
		if c.HTTP != nil {
			blocks++
			if c.Kind != "http" {
				errs = append(errs, structureErr("%s: http settings on kind %q", path, c.Kind))
			}
		}
		if blocks == 0 {
			errs = append(errs, structureErr("%s: missing %s settings", path, c.Kind))
		}
		if blocks > 1 {
			errs = append(errs, structureErr("%s: multiple settings blocks", path))
		}

		for i, b := range c.Before {
			walk(fmt.Sprintf("%s.before[%d]", path, i), b)
		}
		for i, a := range c.After {
			walk(fmt.Sprintf("%s.after[%d]", path, i), a)
		}
	}

	for i, c := range s.Checks {
		walk(fmt.Sprintf("checks[%d]", i), c)
	}
	return errs
}

func structureErr(format string, args ...any) *LoadError {
	return &LoadError{Code: ErrCodeStructure, Message: fmt.Sprintf(format, args...)}
}
