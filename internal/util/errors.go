package util

// ExitCode values returned by the fsentry binary. Success is implied by a nil error from the
// command and is not represented here.
type ExitCode = int

const (
	GeneralError ExitCode = 1
	// PartialSuccess indicates the command completed but found something the caller likely wants
	// to act on (notably integrity drift on verify).
	PartialSuccess ExitCode = 2
)

// ExitError associates an error with the process exit code it should produce so scripted callers
// can distinguish failure kinds.
type ExitError struct {
	Err  error
	Code ExitCode
}

func NewExitError(err error, code ExitCode) *ExitError {
	return &ExitError{Err: err, Code: code}
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
