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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFragment(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMergesFragments(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "00-base.json",
		`{"cluster_fqdn_format": "mesos-{cluster}.example.com",
		  "volumes": [{"hostPath": "/nail/etc", "containerPath": "/nail/etc", "mode": "RO"}]}`)
	writeFragment(t, dir, "10-metrics.json", `{"metrics_provider": "prometheus"}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mesos-{cluster}.example.com", cfg.ClusterFQDNFormat)
	assert.Equal(t, "mesos-norcal-devc.example.com", cfg.ClusterFQDN("norcal-devc"))
	assert.Equal(t, "prometheus", cfg.MetricsProvider)
	require.Len(t, cfg.Volumes, 1)
	assert.Equal(t, "/nail/etc", cfg.Volumes[0].HostPath)
	assert.Equal(t, "RO", cfg.Volumes[0].Mode)
}

func TestLoadLaterFragmentWins(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "00-base.json", `{"docker_registry": "registry-a"}`)
	writeFragment(t, dir, "99-override.json", `{"docker_registry": "registry-b"}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "registry-b", cfg.DockerRegistry)
}

func TestLoadNotConfigured(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotConfigured)

	// Present but empty directory is also not configured.
	_, err = Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFallback(t *testing.T) {
	cfg := Fallback("/etc/paasta")
	assert.Empty(t, cfg.Volumes)
	assert.Equal(t, "paasta-norcal-devc.yelp", cfg.ClusterFQDN("norcal-devc"))
}
