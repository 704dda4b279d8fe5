// Package runner runs external commands to completion and captures their
// output.
//
// Runner is the seam between lux-downloader and the lux executable: the
// production implementation shells out with os/exec, tests substitute a
// fake.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/handiism/lux-downloader/internal/logging"
	"go.uber.org/zap"
)

// Result is the outcome of a command that was started successfully.
type Result struct {
	// ExitCode is the process exit status. -1 means the process was
	// terminated by a signal.
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success returns true if the command exited with status zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Diagnostic returns the trimmed stderr output, falling back to stdout
// when stderr is empty.
func (r *Result) Diagnostic() string {
	if msg := strings.TrimSpace(string(r.Stderr)); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(r.Stdout))
}

// LaunchError reports that a command could not be started at all, for
// example because the executable is missing.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Runner runs a command synchronously.
//
// A non-zero exit status is not an error: it is reported through
// Result.ExitCode. The returned error is non-nil only when the command
// could not be run, in which case it is a *LaunchError.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// Exec runs commands with os/exec.
//
// Commands are not bound to the context: once started they run to
// completion. The context only supplies the logger.
type Exec struct {
	// Dir is the working directory of started commands. Empty means the
	// current directory.
	Dir string
}

// NewExec creates an Exec runner working in dir.
func NewExec(dir string) *Exec {
	return &Exec{Dir: dir}
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	log := logging.FromContext(ctx)

	cmd := exec.Command(name, args...)
	cmd.Dir = e.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("Running command", zap.String("name", name), zap.Strings("args", args), zap.String("dir", e.Dir))

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, &LaunchError{Name: name, Err: err}
	}

	log.Debug("Command finished", zap.String("name", name), zap.Int("exit_code", res.ExitCode))
	return res, nil
}
