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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeader struct {
	address string
	err     error
}

func (f *fakeLeader) MasterAddress(_ context.Context, _ string) (string, error) {
	return f.address, f.err
}

func testSynthesizer() *Synthesizer {
	return &Synthesizer{
		Leader:     &fakeLeader{address: "leader.example.com:5050"},
		SecretFile: "/nonexistent",
		Err:        &bytes.Buffer{},
	}
}

func baseConfRequest() *ConfRequest {
	return &ConfRequest{
		ContainerName:  "paasta_spark_run_testuser_33001",
		UIPort:         33001,
		ClusterFQDN:    "paasta-norcal-devc.yelp",
		Pool:           "default",
		MaxCores:       4,
		ExecutorMemory: 4,
		ExecutorCores:  2,
		Image:          ResolvedImage{URL: "docker-dev.yelpcorp.com/spark:abc", Source: ImageSourceExplicit},
		MesosPrincipal: "spark",
		MesosSecret:    "topsecret",
		Volumes:        []string{"/nail/etc:/nail/etc:ro"},
	}
}

func TestBuildConfStringOrder(t *testing.T) {
	conf, err := testSynthesizer().Build(context.Background(), baseConfRequest())
	require.NoError(t, err)

	expected := strings.Join([]string{
		"--conf spark.app.name=paasta_spark_run_testuser_33001",
		"--conf spark.ui.port=33001",
		"--conf spark.master=mesos://leader.example.com:5050",
		"--conf spark.cores.max=4",
		"--conf spark.executor.memory=4g",
		"--conf spark.executor.cores=2",
		"--conf spark.mesos.executor.docker.image=docker-dev.yelpcorp.com/spark:abc",
		"--conf spark.mesos.principal=spark",
		"--conf spark.mesos.secret=topsecret",
		"--conf spark.driver.extraJavaOptions=-Dderby.system.home=/tmp/derby",
		"--conf spark.mesos.constraints=pool:default",
		"--conf spark.mesos.executor.docker.volumes=/nail/etc:/nail/etc:ro",
	}, " ")
	assert.Equal(t, expected, conf)
}

func TestBuildConfStringDefaultsOmitDriverSettings(t *testing.T) {
	conf, err := testSynthesizer().Build(context.Background(), baseConfRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(conf, "--conf spark.cores.max=4"))
	assert.Equal(t, 1, strings.Count(conf, "--conf spark.executor.memory=4g"))
	assert.Equal(t, 1, strings.Count(conf, "--conf spark.executor.cores=2"))
	assert.NotContains(t, conf, "spark.driver.maxResultSize")
	assert.NotContains(t, conf, "spark.driver.memory")
	assert.NotContains(t, conf, "spark.driver.cores")
	assert.NotContains(t, conf, "spark.jars")
}

func TestBuildConfStringDriverMemory(t *testing.T) {
	withoutDriver, err := testSynthesizer().Build(context.Background(), baseConfRequest())
	require.NoError(t, err)

	req := baseConfRequest()
	req.DriverMemory = 8
	withDriver, err := testSynthesizer().Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(withDriver, "--conf spark.driver.memory=8g"))
	// Only the driver memory entry is added; everything else is unchanged.
	assert.Equal(t, withoutDriver,
		strings.Replace(withDriver, " --conf spark.driver.memory=8g", "", 1))
}

func TestBuildConfStringAllDriverSettings(t *testing.T) {
	req := baseConfRequest()
	req.DriverMaxResultSize = 2
	req.DriverMemory = 8
	req.DriverCores = 3
	req.Jars = "/opt/a.jar,/opt/b.jar"

	conf, err := testSynthesizer().Build(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, conf, "--conf spark.driver.maxResultSize=2g")
	assert.Contains(t, conf, "--conf spark.driver.memory=8g")
	assert.Contains(t, conf, "--conf spark.driver.cores=3")
	assert.Contains(t, conf, "--conf spark.jars=/opt/a.jar,/opt/b.jar")
}

func TestBuildConfStringRegistryCredentials(t *testing.T) {
	testCases := []struct {
		name     string
		source   ImageSource
		expected bool
	}{
		{name: "deployment-resolved image may be private", source: ImageSourceDeployment, expected: true},
		{name: "built image needs no credentials", source: ImageSourceBuilt, expected: false},
		{name: "explicit image needs no credentials", source: ImageSourceExplicit, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseConfRequest()
			req.Image.Source = tc.source

			conf, err := testSynthesizer().Build(context.Background(), req)
			require.NoError(t, err)

			if tc.expected {
				assert.Contains(t, conf, "--conf spark.mesos.uris=file:///root/.dockercfg")
			} else {
				assert.NotContains(t, conf, "spark.mesos.uris")
			}
		})
	}
}

func TestBuildConfStringSecretFromFile(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "paasta_spark_secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("s3cr3t\n"), 0o600))

	s := testSynthesizer()
	s.SecretFile = secretFile

	req := baseConfRequest()
	req.MesosSecret = ""

	conf, err := s.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, conf, "--conf spark.mesos.secret=s3cr3t")
}

func TestBuildConfStringSecretFileUnreadable(t *testing.T) {
	var stderr bytes.Buffer
	s := testSynthesizer()
	s.SecretFile = "/nonexistent/paasta_spark_secret"
	s.Err = &stderr

	req := baseConfRequest()
	req.MesosSecret = ""

	_, err := s.Build(context.Background(), req)
	assert.ErrorIs(t, err, ErrSecretFileUnreadable)
	assert.Contains(t, stderr.String(), "/nonexistent/paasta_spark_secret")
}

func TestBuildConfStringLeaderFailure(t *testing.T) {
	s := testSynthesizer()
	s.Leader = &fakeLeader{err: assert.AnError}

	_, err := s.Build(context.Background(), baseConfRequest())
	assert.ErrorIs(t, err, assert.AnError)
}
