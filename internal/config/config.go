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

// Package config loads the host-wide PaaSTA configuration from /etc/paasta.
// The directory holds JSON fragments that are merged in lexical order, so
// later files override earlier ones key by key.
package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// DefaultSystemConfigDir is where PaaSTA-configured hosts keep their
// system-wide configuration fragments.
const DefaultSystemConfigDir = "/etc/paasta"

const defaultClusterFQDNFormat = "paasta-{cluster}.yelp"

// ErrNotConfigured indicates the system configuration directory is absent or
// holds no configuration fragments. Callers treat this as a degraded mode,
// not a fatal condition.
var ErrNotConfigured = errors.New("no system paasta configuration found")

// Volume is a declarative host-to-container mount.
type Volume struct {
	HostPath      string `json:"hostPath" yaml:"hostPath" mapstructure:"hostPath"`
	ContainerPath string `json:"containerPath" yaml:"containerPath" mapstructure:"containerPath"`
	Mode          string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// SystemConfig is the merged host-wide configuration.
type SystemConfig struct {
	Volumes           []Volume `mapstructure:"volumes"`
	ClusterFQDNFormat string   `mapstructure:"cluster_fqdn_format"`
	DockerRegistry    string   `mapstructure:"docker_registry"`
	MetricsProvider   string   `mapstructure:"metrics_provider"`
	MetricsGateway    string   `mapstructure:"metrics_gateway"`
	SecretProvider    string   `mapstructure:"secret_provider"`

	// Dir records where the configuration was read from, for diagnostics.
	Dir string
}

// Load reads and merges every *.json fragment under dir. It returns
// ErrNotConfigured when the directory cannot be read or contains no
// fragments; any other error means a fragment is malformed.
func Load(dir string) (*SystemConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ErrNotConfigured
	}

	var fragments []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fragments = append(fragments, filepath.Join(dir, entry.Name()))
	}
	if len(fragments) == 0 {
		return nil, ErrNotConfigured
	}
	sort.Strings(fragments)

	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)
	for _, fragment := range fragments {
		data, err := os.ReadFile(fragment)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return nil, err
		}
	}

	cfg := &SystemConfig{Dir: dir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Fallback returns the minimal configuration used when Load reports
// ErrNotConfigured: no volumes and built-in defaults for everything else.
func Fallback(dir string) *SystemConfig {
	v := viper.New()
	setDefaults(v)

	cfg := &SystemConfig{Dir: dir}
	// Unmarshal of pure defaults cannot fail.
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("volumes", []Volume{})
	v.SetDefault("cluster_fqdn_format", defaultClusterFQDNFormat)
	v.SetDefault("docker_registry", "")
	v.SetDefault("metrics_provider", "")
	v.SetDefault("metrics_gateway", "")
	v.SetDefault("secret_provider", "")
}

// ClusterFQDN renders the fully qualified name of a cluster's master
// discovery endpoint.
func (c *SystemConfig) ClusterFQDN(cluster string) string {
	return strings.ReplaceAll(c.ClusterFQDNFormat, "{cluster}", cluster)
}
