package cmd

import "errors"

// Process exit codes.
const (
	exitClean    = 0 // no error-level findings
	exitFindings = 1 // at least one error-level finding
	exitFailure  = 2 // the project or config could not be loaded
)

// exitError carries a specific exit code. err may be nil when the command
// already reported everything it had to say.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error { return e.err }

// failure wraps err with the load-failure exit code.
func failure(err error) error {
	return exitError{code: exitFailure, err: err}
}

// ExitCode maps an Execute error to a process exit code. Errors that carry
// no code are load or usage failures.
func ExitCode(err error) int {
	if err == nil {
		return exitClean
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}
