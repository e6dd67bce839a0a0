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
	"fmt"

	"go.uber.org/zap"
)

// DefaultProviderName selects the file-backed provider.
const DefaultProviderName = "file"

// Provider resolves secret references for one service.
type Provider interface {
	SignatureForRef(ref, environment string) string
}

// Constructor builds a Provider for the given service.
type Constructor func(soaDir, service string, logger *zap.SugaredLogger) Provider

// The provider registry is closed: every supported provider is listed here
// rather than resolved dynamically by import path.
var constructors = map[string]Constructor{
	DefaultProviderName: newFileProvider,
}

// NewProvider returns the provider registered under name. An empty name
// selects the default file-backed provider.
func NewProvider(name, soaDir, service string, logger *zap.SugaredLogger) (Provider, error) {
	if name == "" {
		name = DefaultProviderName
	}
	constructor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown secret provider %q", name)
	}
	return constructor(soaDir, service, logger), nil
}

func newFileProvider(soaDir, service string, logger *zap.SugaredLogger) Provider {
	return &Resolver{SOADir: soaDir, Service: service, Logger: logger}
}
