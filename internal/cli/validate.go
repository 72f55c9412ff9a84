package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/converge/internal/suite"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <suites-dir>",
		Short: "Validate suite files without seeking them",
		Long: `Validate every suite file in the directory against the schema and
structural rules. All errors are collected and reported, not just the first.

Example:
  converge validate ./suites
  converge validate ./suites --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateSuites(opts, args[0], cmd)
		},
	}

	return cmd
}

func validateSuites(opts *ValidateOptions, suitesDir string, cmd *cobra.Command) error {
	suites, errs := suite.LoadDir(suitesDir, suite.LoadModeCollectAll)
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	if len(errs) > 0 {
		report := validationReport{Valid: false}
		code := ExitNotConverged
		for _, err := range errs {
			var loadErr *suite.LoadError
			if errors.As(err, &loadErr) {
				report.Errors = append(report.Errors, validationError{
					Code:    loadErr.Code,
					Message: loadErr.Error(),
				})
				if loadErr.Code == suite.ErrCodeNotFound || loadErr.Code == suite.ErrCodeNoFiles {
					code = ExitCommandError
				}
				continue
			}
			report.Errors = append(report.Errors, validationError{Message: err.Error()})
		}
		if err := out.Failure(report.String()); err != nil {
			return err
		}
		return NewExitError(code, fmt.Sprintf("%d validation error(s)", len(report.Errors)))
	}

	report := validationReport{Valid: true}
	for _, s := range suites {
		hash, err := suite.Hash(s)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("hash suite %q", s.Name), err)
		}
		report.Suites = append(report.Suites, validatedSuite{
			Name:   s.Name,
			Hash:   hash,
			Checks: len(s.Checks),
		})
	}
	return out.Success(report)
}

type validationReport struct {
	Valid  bool              `json:"valid"`
	Suites []validatedSuite  `json:"suites,omitempty"`
	Errors []validationError `json:"errors,omitempty"`
}

type validatedSuite struct {
	Name   string `json:"name"`
	Hash   string `json:"hash"`
	Checks int    `json:"checks"`
}

type validationError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (r validationReport) String() string {
	if !r.Valid {
		s := ""
		for i, e := range r.Errors {
			if i > 0 {
				s += "\n"
			}
			s += e.Message
		}
		return s
	}
	s := ""
	for i, v := range r.Suites {
		if i > 0 {
			s += "\n"
		}
		s += fmt.Sprintf("suite %s: %d check(s), hash %s", v.Name, v.Checks, v.Hash)
	}
	return s
}
