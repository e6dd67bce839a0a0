/*
Copyright 2026 The PaaSTA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package processes

import (
	"context"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Runner executes external commands and blocks until they exit. None of the
// commands run by the launcher are retried; a non-zero exit is surfaced to
// the caller as-is.
type Runner interface {
	// Run executes command through the shell and returns its exit code. The
	// returned error is non-nil only when the command could not be started or
	// the context expired before it finished.
	Run(ctx context.Context, command string) (int, error)
}

// ShellRunner runs commands with `sh -c`, streaming output to the attached
// writers.
type ShellRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.SugaredLogger
}

// NewShellRunner returns a ShellRunner attached to the process stdout/stderr.
func NewShellRunner(logger *zap.SugaredLogger) *ShellRunner {
	return &ShellRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

func (r *ShellRunner) Run(ctx context.Context, command string) (int, error) {
	r.Logger.Debugw("running command", "command", command)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		r.Logger.Debugw("command exited non-zero", "command", command, "code", exitErr.ExitCode())
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
