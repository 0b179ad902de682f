package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrTargetNotFound is returned when a requested target name has no rule in the registry.
	ErrTargetNotFound = zerr.New("no rule for target")

	// ErrDuplicateTarget is returned when a target name is defined more than once.
	ErrDuplicateTarget = zerr.New("target already defined")

	// ErrMissingPrerequisite is returned when a target names a prerequisite that does not exist.
	ErrMissingPrerequisite = zerr.New("missing prerequisite")

	// ErrCycleDetected is returned when target prerequisites form a cycle.
	ErrCycleDetected = zerr.New("prerequisite cycle detected")

	// ErrNoTargetsSpecified is returned when a run is requested without any target names.
	ErrNoTargetsSpecified = zerr.New("no targets specified")
)

// CommandError reports a command line that exited with a non-zero status.
// The runner stops at the first CommandError and the process exits with
// the carried status.
type CommandError struct {
	Command  string
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitStatus maps an error chain to a process exit status. A nil error is
// status 0, a CommandError yields the failing command's own status, and
// any other error (unknown target, bad taskfile) is status 2.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 2
}
