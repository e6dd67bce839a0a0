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

// Package soaconfig reads per-service declarative configuration from the
// soa-configs tree: instance definitions from <service>/spark-<cluster>.yaml
// and previously recorded deployments from <service>/deployments.json.
package soaconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kkellyy/paasta/internal/config"
)

// ErrNoConfigurationForService indicates the service has no instance
// definition for the requested cluster/instance pair.
var ErrNoConfigurationForService = fmt.Errorf("no configuration found for service instance")

type rawInstance struct {
	Env          map[string]string `yaml:"env"`
	ExtraVolumes []config.Volume   `yaml:"extra_volumes"`
	Cmd          string            `yaml:"cmd"`
	DeployGroup  string            `yaml:"deploy_group"`
}

// InstanceConfig is the declarative configuration of one service instance,
// optionally joined with the service's deployment records.
type InstanceConfig struct {
	Service  string
	Instance string
	Cluster  string

	raw         rawInstance
	deployments *Deployments
}

// LoadInstanceConfig reads the instance definition for service/instance on
// cluster. Deployment records are loaded only when loadDeployments is set,
// i.e. when the image will be resolved from deployment metadata; their
// absence is then reported as ErrNoDeploymentsAvailable.
func LoadInstanceConfig(soaDir, service, instance, cluster string, loadDeployments bool) (*InstanceConfig, error) {
	path := filepath.Join(soaDir, service, fmt.Sprintf("spark-%s.yaml", cluster))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s on cluster %s (%s)",
			ErrNoConfigurationForService, service, instance, cluster, path)
	}

	instances := map[string]rawInstance{}
	if err := yaml.Unmarshal(data, &instances); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	raw, ok := instances[instance]
	if !ok {
		return nil, fmt.Errorf("%w: instance %s not defined in %s",
			ErrNoConfigurationForService, instance, path)
	}

	cfg := &InstanceConfig{
		Service:  service,
		Instance: instance,
		Cluster:  cluster,
		raw:      raw,
	}

	if loadDeployments {
		deployments, err := LoadDeployments(soaDir, service)
		if err != nil {
			return nil, err
		}
		cfg.deployments = deployments
	}
	return cfg, nil
}

// DeployGroup returns the instance's deploy group, defaulting to
// <cluster>.<instance>.
func (c *InstanceConfig) DeployGroup() string {
	if c.raw.DeployGroup != "" {
		return c.raw.DeployGroup
	}
	return fmt.Sprintf("%s.%s", c.Cluster, c.Instance)
}

// Cmd returns the command declared for the instance, if any.
func (c *InstanceConfig) Cmd() string {
	return c.raw.Cmd
}

// Env returns a copy of the instance's declared environment variables.
func (c *InstanceConfig) Env() map[string]string {
	env := make(map[string]string, len(c.raw.Env))
	for k, v := range c.raw.Env {
		env[k] = v
	}
	return env
}

// Volumes merges the system-wide volumes with the instance's extra volumes,
// keeping the first binding seen for each container path.
func (c *InstanceConfig) Volumes(systemVolumes []config.Volume) []config.Volume {
	seen := map[string]bool{}
	var volumes []config.Volume
	for _, v := range append(append([]config.Volume{}, c.raw.ExtraVolumes...), systemVolumes...) {
		if seen[v.ContainerPath] {
			continue
		}
		seen[v.ContainerPath] = true
		volumes = append(volumes, v)
	}
	return volumes
}

// DockerURL resolves the registry-qualified image recorded for this
// instance's deploy group.
func (c *InstanceConfig) DockerURL(registry string) (string, error) {
	if c.deployments == nil {
		return "", ErrNoDeploymentsAvailable
	}
	image, err := c.deployments.ImageFor(c.Service, c.DeployGroup())
	if err != nil {
		return "", err
	}
	if registry == "" {
		return image, nil
	}
	return fmt.Sprintf("%s/%s", registry, image), nil
}
