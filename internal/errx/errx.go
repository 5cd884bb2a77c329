package errx

import (
	"errors"
	"fmt"
)

// Exit codes returned by the cfq binary.
const (
	ExitOK          = 0
	ExitFatal       = 1
	ExitUsage       = 2
	ExitUnreachable = 3
	ExitRejected    = 4
)

var (
	// ErrUnreachable marks calls that got no usable response from Codeforces.
	ErrUnreachable = errors.New("codeforces is unreachable")

	// ErrUsage marks invalid command-line input.
	ErrUsage = errors.New("usage")
)

// RejectedError is returned when Codeforces declined a request. Comment is the upstream text.
type RejectedError struct {
	Method  string
	Comment string
}

func (e *RejectedError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("codeforces rejected the request: %s", e.Comment)
	}
	return fmt.Sprintf("codeforces rejected %s: %s", e.Method, e.Comment)
}

// Rejected returns a *RejectedError for method.
func Rejected(method string, comment string) error {
	return &RejectedError{Method: method, Comment: comment}
}

// Unreachable returns an error wrapped with ErrUnreachable, scoped to an API method.
func Unreachable(method string, cause error) error {
	switch {
	case method == "" && cause == nil:
		return ErrUnreachable
	case cause == nil:
		return fmt.Errorf("%s: %w", method, ErrUnreachable)
	default:
		return fmt.Errorf("%s: %w (%v)", method, ErrUnreachable, cause)
	}
}

// Usage returns an error wrapped with ErrUsage.
func Usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var rejected *RejectedError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrUnreachable):
		return ExitUnreachable
	case errors.As(err, &rejected):
		return ExitRejected
	default:
		return ExitFatal
	}
}
