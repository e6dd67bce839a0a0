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
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kkellyy/paasta/internal/mesos"
	"github.com/kkellyy/paasta/pkg/common"
)

// ConfRequest carries everything the synthesizer needs to emit the Spark
// configuration string for one launch.
type ConfRequest struct {
	ContainerName string
	UIPort        int
	ClusterFQDN   string
	Pool          string

	MaxCores       int
	ExecutorMemory int
	ExecutorCores  int

	// Optional driver settings; zero means not supplied and omitted.
	DriverMaxResultSize int
	DriverMemory        int
	DriverCores         int

	Image ResolvedImage
	Jars  string

	MesosPrincipal string
	// MesosSecret overrides the default secret file when non-empty.
	MesosSecret string

	// Volumes are the declarative bindings, already filtered and formatted
	// as hostPath:containerPath:mode.
	Volumes []string
}

// Synthesizer builds the ordered Spark configuration string. Emission order
// is the conflict-resolution policy: the runtime reads later duplicate keys
// as overrides, so the sequence below is a contract, not a style choice.
type Synthesizer struct {
	Leader     mesos.LeaderResolver
	SecretFile string
	Err        io.Writer
}

// NewSynthesizer returns a Synthesizer reading the default shared-secret
// file.
func NewSynthesizer(leader mesos.LeaderResolver) *Synthesizer {
	return &Synthesizer{
		Leader:     leader,
		SecretFile: common.DefaultSparkMesosSecretFile,
		Err:        os.Stderr,
	}
}

type confOptionFunc func(ctx context.Context, req *ConfRequest) ([]string, error)

// Build produces the full configuration string, each entry formatted as
// `--conf key=value` and the sequence joined with single spaces.
func (s *Synthesizer) Build(ctx context.Context, req *ConfRequest) (string, error) {
	optionFuncs := []confOptionFunc{
		s.appNameOption,
		s.uiPortOption,
		s.masterOption,
		s.sizingOption,
		s.driverOption,
		s.imageOption,
		s.registryCredentialsOption,
		s.jarsOption,
		s.principalOption,
		s.secretOption,
		s.derbyOption,
		s.poolOption,
		s.volumesOption,
	}

	var entries []string
	for _, optionFunc := range optionFuncs {
		options, err := optionFunc(ctx, req)
		if err != nil {
			return "", err
		}
		for _, option := range options {
			entries = append(entries, "--conf "+option)
		}
	}
	return strings.Join(entries, " "), nil
}

func (s *Synthesizer) appNameOption(_ context.Context, req *ConfRequest) ([]string, error) {
	return []string{fmt.Sprintf("%s=%s", common.SparkAppName, req.ContainerName)}, nil
}

func (s *Synthesizer) uiPortOption(_ context.Context, req *ConfRequest) ([]string, error) {
	return []string{fmt.Sprintf("%s=%d", common.SparkUIPort, req.UIPort)}, nil
}

func (s *Synthesizer) masterOption(ctx context.Context, req *ConfRequest) ([]string, error) {
	address, err := s.Leader.MasterAddress(ctx, req.ClusterFQDN)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("%s=mesos://%s", common.SparkMaster, address)}, nil
}

func (s *Synthesizer) sizingOption(_ context.Context, req *ConfRequest) ([]string, error) {
	return []string{
		fmt.Sprintf("%s=%d", common.SparkCoresMax, req.MaxCores),
		fmt.Sprintf("%s=%dg", common.SparkExecutorMemory, req.ExecutorMemory),
		fmt.Sprintf("%s=%d", common.SparkExecutorCores, req.ExecutorCores),
	}, nil
}

func (s *Synthesizer) driverOption(_ context.Context, req *ConfRequest) ([]string, error) {
	var options []string
	if req.DriverMaxResultSize > 0 {
		options = append(options, fmt.Sprintf("%s=%dg", common.SparkDriverMaxResultSize, req.DriverMaxResultSize))
	}
	if req.DriverMemory > 0 {
		options = append(options, fmt.Sprintf("%s=%dg", common.SparkDriverMemory, req.DriverMemory))
	}
	if req.DriverCores > 0 {
		options = append(options, fmt.Sprintf("%s=%d", common.SparkDriverCores, req.DriverCores))
	}
	return options, nil
}

func (s *Synthesizer) imageOption(_ context.Context, req *ConfRequest) ([]string, error) {
	return []string{fmt.Sprintf("%s=%s", common.SparkMesosExecutorDockerImage, req.Image.URL)}, nil
}

func (s *Synthesizer) registryCredentialsOption(_ context.Context, req *ConfRequest) ([]string, error) {
	// Only deployment-resolved images may be private; built and explicit
	// images are assumed pullable without credentials.
	if req.Image.Source != ImageSourceDeployment {
		return nil, nil
	}
	return []string{fmt.Sprintf("%s=%s", common.SparkMesosURIs, common.DockerCfgURI)}, nil
}

func (s *Synthesizer) jarsOption(_ context.Context, req *ConfRequest) ([]string, error) {
	if req.Jars == "" {
		return nil, nil
	}
	return []string{fmt.Sprintf("%s=%s", common.SparkJars, req.Jars)}, nil
}

func (s *Synthesizer) principalOption(_ context.Context, req *ConfRequest) ([]string, error) {
	return []string{fmt.Sprintf("%s=%s", common.SparkMesosPrincipal, req.MesosPrincipal)}, nil
}

func (s *Synthesizer) secretOption(_ context.Context, req *ConfRequest) ([]string, error) {
	secret := req.MesosSecret
	if secret == "" {
		data, err := os.ReadFile(s.SecretFile)
		if err != nil {
			fmt.Fprintf(s.Err, "Cannot load mesos secret from %s\n", s.SecretFile)
			return nil, fmt.Errorf("%w from %s: %v", ErrSecretFileUnreadable, s.SecretFile, err)
		}
		secret = strings.TrimSpace(string(data))
	}
	return []string{fmt.Sprintf("%s=%s", common.SparkMesosSecret, secret)}, nil
}

func (s *Synthesizer) derbyOption(_ context.Context, _ *ConfRequest) ([]string, error) {
	return []string{fmt.Sprintf("%s=%s", common.SparkDriverExtraJavaOptions, common.DerbySystemHomeOption)}, nil
}

func (s *Synthesizer) poolOption(_ context.Context, req *ConfRequest) ([]string, error) {
	return []string{fmt.Sprintf("%s=pool:%s", common.SparkMesosConstraints, req.Pool)}, nil
}

func (s *Synthesizer) volumesOption(_ context.Context, req *ConfRequest) ([]string, error) {
	return []string{fmt.Sprintf("%s=%s", common.SparkMesosExecutorDockerVolumes, strings.Join(req.Volumes, ","))}, nil
}
