package suite

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// LoadMode controls how errors are handled while loading a directory.
type LoadMode int

const (
	// LoadModeFailFast stops at the first file that fails to load.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll keeps going and returns every error found.
	LoadModeCollectAll
)

// LoadDir loads every .cue suite file under dir, sorted by path so load
// order never depends on directory iteration. Each file declares exactly one
// suite. Structural validation runs on every decoded suite.
func LoadDir(dir string, mode LoadMode) ([]Suite, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("suites directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing suites directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	files, err := findCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(files) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	var suites []Suite
	var errs []error
	for _, file := range files {
		s, fileErrs := LoadFile(file)
		if len(fileErrs) > 0 {
			errs = append(errs, fileErrs...)
			if mode == LoadModeFailFast {
				return suites, errs
			}
			continue
		}
		suites = append(suites, *s)
	}
	return suites, errs
}

// LoadFile loads and validates one suite file.
func LoadFile(path string) (*Suite, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, File: path, Message: fmt.Sprintf("reading suite file: %v", err)}}
	}
	return LoadBytes(path, data)
}

// LoadBytes compiles and validates suite source that is already in memory.
// The path is used only for error positions.
func LoadBytes(path string, data []byte) (*Suite, []error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The embedded schema is part of the binary; failing to compile it
		// is a build defect, not user input.
		panic(fmt.Sprintf("suite: embedded schema does not compile: %v", err))
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, cueErrors(ErrCodeParse, path, err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueErrors(ErrCodeSchema, path, err)
	}

	var wrapper struct {
		Suite Suite `json:"suite"`
	}
	if err := unified.Decode(&wrapper); err != nil {
		return nil, cueErrors(ErrCodeDecode, path, err)
	}

	s := wrapper.Suite
	if s.Strategy == "" {
		s.Strategy = StrategyAll
	}
	if errs := Validate(s); len(errs) > 0 {
		out := make([]error, 0, len(errs))
		for _, e := range errs {
			e.File = path
			out = append(out, e)
		}
		return nil, out
	}
	return &s, nil
}

// findCUEFiles walks dir and returns all .cue file paths, sorted.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// cueErrors converts a CUE error (possibly a list) into LoadErrors carrying
// positions.
func cueErrors(code, file string, err error) []error {
	list := errors.Errors(err)
	if len(list) == 0 {
		return []error{&LoadError{Code: code, File: file, Message: err.Error()}}
	}
	out := make([]error, 0, len(list))
	for _, e := range list {
		out = append(out, &LoadError{
			Code:    code,
			File:    file,
			Message: e.Error(),
			Pos:     e.Position(),
		})
	}
	return out
}
