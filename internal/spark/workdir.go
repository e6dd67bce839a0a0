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
	"fmt"
	"path/filepath"
	"strings"
)

// WorkDirMapping is the host directory mounted read-write into the container
// and its container-side path. Both components are absolute.
type WorkDirMapping struct {
	Host      string
	Container string
}

// ValidateWorkDir parses a "host:container" mount specification. It runs
// before any side effect of the launch, so a malformed value aborts the whole
// invocation cleanly.
func ValidateWorkDir(s string) (WorkDirMapping, error) {
	dirs := strings.Split(s, ":")
	if len(dirs) != 2 {
		return WorkDirMapping{}, fmt.Errorf("%w: %q", ErrInvalidWorkDirFormat, s)
	}
	for _, dir := range dirs {
		if !filepath.IsAbs(dir) {
			return WorkDirMapping{}, fmt.Errorf("%w: %q", ErrNonAbsolutePath, dir)
		}
	}
	return WorkDirMapping{Host: dirs[0], Container: dirs[1]}, nil
}

// String renders the mapping back to host:container form.
func (m WorkDirMapping) String() string {
	return m.Host + ":" + m.Container
}
