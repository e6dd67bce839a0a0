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

package secrets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var secretRefPattern = regexp.MustCompile(`^SECRET\([A-Za-z0-9_-]*\)$`)

// IsSecretRef reports whether value is a secret reference of the exact form
// SECRET(name). The whole value must match; values merely containing such a
// token are not references.
func IsSecretRef(value string) bool {
	return secretRefPattern.MatchString(value)
}

// SecretNameFromRef extracts the secret name from a reference previously
// accepted by IsSecretRef.
func SecretNameFromRef(ref string) string {
	name := ref[strings.Index(ref, "(")+1:]
	return strings.TrimSuffix(name, ")")
}

type secretFile struct {
	Environments map[string]struct {
		Signature string `json:"signature"`
	} `json:"environments"`
}

// Resolver looks up secret signatures from per-service JSON documents under
// the soa-configs tree.
type Resolver struct {
	SOADir  string
	Service string
	Logger  *zap.SugaredLogger
}

// SignatureForRef resolves a SECRET(name) reference to the signature recorded
// for the given vault environment. Lookup failures are diagnostics, not
// errors: a missing file, malformed JSON or an absent environment key each
// log distinctly and return the empty string.
func (r *Resolver) SignatureForRef(ref, environment string) string {
	name := SecretNameFromRef(ref)
	path := filepath.Join(r.SOADir, r.Service, "secrets", name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		r.Logger.Warnw("failed to open json secret", "path", path, "error", err)
		return ""
	}

	var file secretFile
	if err := json.Unmarshal(data, &file); err != nil {
		r.Logger.Warnw("failed to deserialise json secret", "path", path, "error", err)
		return ""
	}

	env, ok := file.Environments[environment]
	if !ok || env.Signature == "" {
		r.Logger.Warnw("no secret signature for environment",
			"path", path, "environment", environment)
		return ""
	}
	return env.Signature
}
