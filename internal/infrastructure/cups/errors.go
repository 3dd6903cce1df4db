package cups

import "strings"

// Error codes for command failures
const (
	ErrCodeCommandFailed  = "COMMAND_FAILED"
	ErrCodeBinaryNotFound = "BINARY_NOT_FOUND"
	ErrCodeCommandTimeout = "COMMAND_TIMEOUT"
)

// CommandError represents a failed invocation of a CUPS program
type CommandError struct {
	Code    string
	Message string
	// Stderr is the program's trimmed standard error, if it ran
	Stderr string
	Cause  error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}

// NewCommandError creates a new CommandError
func NewCommandError(code, message, stderr string, cause error) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
		Stderr:  strings.TrimSpace(stderr),
		Cause:   cause,
	}
}
