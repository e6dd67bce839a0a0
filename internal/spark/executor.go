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

package spark

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kkellyy/paasta/internal/processes"
	"github.com/kkellyy/paasta/pkg/common"
)

// DockerRunArgs renders the plan into the wrapper's argument vector. The
// vector is stable: environment and volume flags are emitted in sorted order
// so a dry run is reproducible.
func DockerRunArgs(plan *LaunchPlan, uid, gid int) []string {
	args := []string{
		common.DockerWrapper, "run",
		"--rm",
		"--net=host",
		"--interactive=true",
		"--tty=true",
		fmt.Sprintf("--user=%d:%d", uid, gid),
		fmt.Sprintf("--name=%s", plan.ContainerName),
	}

	keys := make([]string, 0, len(plan.Environment))
	for key := range plan.Environment {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "--env", fmt.Sprintf("%s=%s", key, plan.Environment[key]))
	}

	for _, volume := range plan.Volumes {
		args = append(args, fmt.Sprintf("--volume=%s", volume))
	}

	args = append(args, plan.Image)
	args = append(args, "sh", "-c", plan.Command)
	return args
}

// Executor terminates the pipeline: it either serializes the assembled argv
// (dry run) or replaces the current process with the container wrapper. A
// successful live run never returns.
type Executor struct {
	UID int
	GID int

	Exec     processes.ExecFunc
	LookPath func(file string) (string, error)

	Out    io.Writer
	Logger *zap.SugaredLogger
}

// NewExecutor returns an Executor that really execs as the invoking user.
func NewExecutor(logger *zap.SugaredLogger) *Executor {
	return &Executor{
		UID:      os.Geteuid(),
		GID:      os.Getegid(),
		Exec:     processes.SyscallExec,
		LookPath: exec.LookPath,
		Out:      os.Stdout,
		Logger:   logger,
	}
}

// Run consumes the plan. For a dry run the argv is printed as a JSON array
// and control returns normally; otherwise the only way Run returns is an
// exec failure.
func (e *Executor) Run(plan *LaunchPlan) error {
	args := DockerRunArgs(plan, e.UID, e.GID)

	if plan.DryRun {
		serialized, err := json.Marshal(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.Out, string(serialized))
		return nil
	}

	fmt.Fprintf(e.Out, "Running docker command:\n%s\n", strings.Join(args, " "))

	wrapper, err := e.LookPath(common.DockerWrapper)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", common.DockerWrapper, err)
	}
	if err := e.Exec(wrapper, args, os.Environ()); err != nil {
		return fmt.Errorf("failed to exec %s: %w", common.DockerWrapper, err)
	}
	return nil
}
