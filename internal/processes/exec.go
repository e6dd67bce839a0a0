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

import "syscall"

// ExecFunc replaces the current process image with the given program. A
// successful call never returns; the only observable outcome is an error.
// Tests substitute a recording implementation to assert the requested argv
// without actually replacing the test process.
type ExecFunc func(argv0 string, argv []string, env []string) error

// SyscallExec is the live ExecFunc backed by execve(2).
func SyscallExec(argv0 string, argv []string, env []string) error {
	return syscall.Exec(argv0, argv, env)
}
