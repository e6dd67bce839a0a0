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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWorkDir(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "/a:/b"},
		{name: "relative host", input: "a:/b", wantErr: ErrNonAbsolutePath},
		{name: "relative container", input: "/a:b", wantErr: ErrNonAbsolutePath},
		{name: "both relative", input: "a:b", wantErr: ErrNonAbsolutePath},
		{name: "too many components", input: "/a:/b:/c", wantErr: ErrInvalidWorkDirFormat},
		{name: "single component", input: "/a", wantErr: ErrInvalidWorkDirFormat},
		{name: "empty", input: "", wantErr: ErrInvalidWorkDirFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapping, err := ValidateWorkDir(tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, WorkDirMapping{Host: "/a", Container: "/b"}, mapping)
			assert.Equal(t, "/a:/b", mapping.String())
		})
	}
}
