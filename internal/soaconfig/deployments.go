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

package soaconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNoDeploymentsAvailable indicates the service has no deployments.json
	// at all, typically because no deploy pipeline has run for it.
	ErrNoDeploymentsAvailable = errors.New("no deployments.json found")

	// ErrNoDockerImage indicates deployments.json exists but no image has
	// been marked for the requested deploy group.
	ErrNoDockerImage = errors.New("no docker image marked for deployment")
)

type deploymentRecord struct {
	DockerImage string `json:"docker_image"`
}

// Deployments is a service's recorded deployment metadata, keyed by
// "<service>:<deploy group>".
type Deployments struct {
	V1 map[string]deploymentRecord `json:"v1"`
}

// LoadDeployments reads <soaDir>/<service>/deployments.json. A missing file
// is ErrNoDeploymentsAvailable; a present but unreadable one is a plain
// error.
func LoadDeployments(soaDir, service string) (*Deployments, error) {
	path := filepath.Join(soaDir, service, "deployments.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s/%s; run generate_deployments_for_service -d %s -s %s",
				ErrNoDeploymentsAvailable, soaDir, service, soaDir, service)
		}
		return nil, err
	}

	deployments := &Deployments{}
	if err := json.Unmarshal(data, deployments); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return deployments, nil
}

// ImageFor returns the image marked for the given deploy group.
func (d *Deployments) ImageFor(service, deployGroup string) (string, error) {
	record, ok := d.V1[fmt.Sprintf("%s:%s", service, deployGroup)]
	if !ok || record.DockerImage == "" {
		return "", fmt.Errorf("%w: no sha marked for the %s deploy group; "+
			"ensure %s has run through a deploy pipeline or paasta mark-for-deployment has been run",
			ErrNoDockerImage, deployGroup, service)
	}
	return record.DockerImage, nil
}
