package hypr

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates no way of reaching the compositor was found.
var ErrUnavailable = errors.New("hyprland is not reachable")

// QueryError reports a failure of the compositor query mechanism itself.
// ExitCode carries the failing tool's own exit status so it can be
// propagated unmodified.
type QueryError struct {
	Query    string
	ExitCode int
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("hyprland query %q failed (exit %d): %v", e.Query, e.ExitCode, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// exitCoder is implemented by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// exitCodeOf returns the exit status carried by err, or fallback.
func exitCodeOf(err error, fallback int) int {
	var ec exitCoder
	if errors.As(err, &ec) && ec.ExitCode() > 0 {
		return ec.ExitCode()
	}
	return fallback
}
