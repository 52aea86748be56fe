package msbuild

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedArchitecture = errors.New("unsupported architecture")
	ErrUnsupportedToolset      = errors.New("unsupported toolset")
	ErrUnsupportedRuntime      = errors.New("unsupported runtime")
	ErrInvalidVerbosity        = errors.New("invalid verbosity")
	ErrMissingOverlayFile      = errors.New("missing property file")
	ErrBuildToolFailed         = errors.New("build tool failed")
)

// ToolError reports a build tool that exited unsuccessfully.
type ToolError struct {
	Tool     string
	ExitCode int    // -1 if the process did not exit normally
	Output   string // tail of the combined output
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: %s exited with code %d", ErrBuildToolFailed, e.Tool, e.ExitCode)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *ToolError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBuildToolFailed}
	}
	return []error{ErrBuildToolFailed, e.Err}
}
