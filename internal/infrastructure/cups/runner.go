package cups

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// Result is the captured outcome of a finished process
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with status 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes an external program and captures its output.
// A non-zero exit status is reported through Result, not as an error;
// errors mean the program could not be run to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecRunner runs programs with os/exec
type ExecRunner struct {
	logger *zap.Logger
}

// NewExecRunner creates a Runner backed by os/exec
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger}
}

// Run executes name with args. Arguments are passed as a vector and never
// through a shell.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	binary, err := resolveBinaryPath(name)
	if err != nil {
		return nil, NewCommandError(ErrCodeBinaryNotFound,
			fmt.Sprintf("%s not found", name), "", err)
	}

	r.logger.Debug("executing command",
		zap.String("binary", binary),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewCommandError(ErrCodeCommandTimeout,
				fmt.Sprintf("%s timed out", name), stderr.String(), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewCommandError(ErrCodeCommandTimeout,
				fmt.Sprintf("%s was cancelled", name), stderr.String(), err)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, NewCommandError(ErrCodeCommandFailed,
				fmt.Sprintf("failed to run %s", name), stderr.String(), err)
		}

		r.logger.Debug("command exited with non-zero status",
			zap.String("binary", binary),
			zap.Int("exit_code", exitErr.ExitCode()),
			zap.String("stderr", stderr.String()))

		return &Result{
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitErr.ExitCode(),
		}, nil
	}

	return &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}

// resolveBinaryPath finds the full path to the binary
func resolveBinaryPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}
	return exec.LookPath(path)
}

// Ensure ExecRunner implements Runner
var _ Runner = (*ExecRunner)(nil)
