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

	"go.uber.org/zap"

	"github.com/kkellyy/paasta/internal/config"
	"github.com/kkellyy/paasta/internal/secrets"
	"github.com/kkellyy/paasta/internal/soaconfig"
	"github.com/kkellyy/paasta/pkg/common"
	"github.com/kkellyy/paasta/pkg/util"
)

// Recognized run-mode commands. Anything else is passed through verbatim as
// an intentional escape hatch.
const (
	CmdPySpark     = "pyspark"
	CmdSparkShell  = "spark-shell"
	CmdSparkSubmit = "spark-submit"
	CmdJupyter     = "jupyter"
)

// LaunchRequest is the immutable input bundle for one launch, built once per
// invocation after flag validation.
type LaunchRequest struct {
	Service  string
	Instance string
	Cluster  string
	Pool     string

	Cmd     string
	Jars    string
	WorkDir WorkDirMapping

	MesosPrincipal string
	MesosSecret    string

	MaxCores       int
	ExecutorMemory int
	ExecutorCores  int

	DriverMaxResultSize int
	DriverMemory        int
	DriverCores         int

	Build  bool
	Image  string
	DryRun bool
}

// LaunchPlan is the fully assembled container execution: consumed exactly
// once, either serialized for a dry run or handed to process replacement.
type LaunchPlan struct {
	ContainerName string
	UIPort        int
	Environment   map[string]string
	Volumes       []string
	Image         string
	Command       string
	DryRun        bool
}

// Assembler combines the resolved image, synthesized configuration, volumes
// and environment into a LaunchPlan.
type Assembler struct {
	Synthesizer  *Synthesizer
	SystemConfig *config.SystemConfig
	Secrets      secrets.Provider
	Logger       *zap.SugaredLogger
	Out          io.Writer

	FQDN     string
	Username string

	// PathExists and PickPort are injection points for tests; the defaults
	// stat the filesystem and reserve a real port.
	PathExists func(path string) bool
	PickPort   func(service string) (int, error)

	// AWSCredentials supplies the credential pair forwarded to the driver.
	AWSCredentials func() map[string]string
}

// NewAssembler wires an Assembler with live defaults.
func NewAssembler(synthesizer *Synthesizer, systemConfig *config.SystemConfig, secretsProvider secrets.Provider, logger *zap.SugaredLogger) *Assembler {
	return &Assembler{
		Synthesizer:  synthesizer,
		SystemConfig: systemConfig,
		Secrets:      secretsProvider,
		Logger:       logger,
		Out:          os.Stdout,
		FQDN:         util.GetFQDN(),
		Username:     util.GetUsername(),
		PathExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		PickPort:       util.PickRandomPort,
		AWSCredentials: func() map[string]string { return AWSCredentials(logger) },
	}
}

// Assemble builds the LaunchPlan for the given request and resolved image.
func (a *Assembler) Assemble(ctx context.Context, req *LaunchRequest, img ResolvedImage, inst *soaconfig.InstanceConfig) (*LaunchPlan, error) {
	volumes := a.filterVolumes(inst.Volumes(a.SystemConfig.Volumes))

	port, err := a.PickPort(req.Service)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve a UI port: %w", err)
	}
	containerName := fmt.Sprintf("paasta_spark_run_%s_%d", a.Username, port)

	confStr, err := a.Synthesizer.Build(ctx, &ConfRequest{
		ContainerName:       containerName,
		UIPort:              port,
		ClusterFQDN:         a.SystemConfig.ClusterFQDN(req.Cluster),
		Pool:                req.Pool,
		MaxCores:            req.MaxCores,
		ExecutorMemory:      req.ExecutorMemory,
		ExecutorCores:       req.ExecutorCores,
		DriverMaxResultSize: req.DriverMaxResultSize,
		DriverMemory:        req.DriverMemory,
		DriverCores:         req.DriverCores,
		Image:               img,
		Jars:                req.Jars,
		MesosPrincipal:      req.MesosPrincipal,
		MesosSecret:         req.MesosSecret,
		Volumes:             volumes,
	})
	if err != nil {
		return nil, err
	}

	// Client-side bindings are mounted into the driver container only; they
	// were deliberately left out of the executor volume list above.
	volumes = append(volumes,
		req.WorkDir.String()+":rw",
		"/etc/passwd:/etc/passwd:ro",
		"/etc/group:/etc/group:ro",
	)

	command, err := a.assembleCommand(req, inst, confStr)
	if err != nil {
		return nil, err
	}

	environment := a.assembleEnvironment(req, inst, confStr)

	fmt.Fprintf(a.Out, "\nSpark Monitoring URL http://%s:%d\n\n", a.FQDN, port)

	return &LaunchPlan{
		ContainerName: containerName,
		UIPort:        port,
		Environment:   environment,
		Volumes:       volumes,
		Image:         img.URL,
		Command:       command,
		DryRun:        req.DryRun,
	}, nil
}

// filterVolumes keeps only bindings whose host path exists, formatting each
// as hostPath:containerPath:mode with the mode lower-cased. Missing paths
// are dropped with a warning, never fatally.
func (a *Assembler) filterVolumes(volumes []config.Volume) []string {
	var kept []string
	for _, v := range volumes {
		if !a.PathExists(v.HostPath) {
			a.Logger.Warnw("host path does not exist, skipping this binding", "hostPath", v.HostPath)
			continue
		}
		kept = append(kept, fmt.Sprintf("%s:%s:%s", v.HostPath, v.ContainerPath, strings.ToLower(v.Mode)))
	}
	return kept
}

func (a *Assembler) assembleCommand(req *LaunchRequest, inst *soaconfig.InstanceConfig, confStr string) (string, error) {
	command := req.Cmd
	if command == "" {
		command = inst.Cmd()
	}
	if command == "" {
		return "", ErrNoCommandSpecified
	}

	switch {
	case command == CmdJupyter:
		return fmt.Sprintf("jupyter notebook -y --ip=%s --notebook-dir=%s", a.FQDN, req.WorkDir.Container), nil
	case command == CmdPySpark || command == CmdSparkShell:
		// Spark options ride on the command line for the shells.
		return command + " " + confStr, nil
	case strings.HasPrefix(command, CmdSparkSubmit):
		// Splice the configuration right after the keyword, keeping whatever
		// the user put after it.
		return CmdSparkSubmit + " " + confStr + strings.TrimPrefix(command, CmdSparkSubmit), nil
	default:
		return command, nil
	}
}

func (a *Assembler) assembleEnvironment(req *LaunchRequest, inst *soaconfig.InstanceConfig, confStr string) map[string]string {
	environment := inst.Env()
	for key, value := range environment {
		if !secrets.IsSecretRef(value) {
			continue
		}
		if signature := a.Secrets.SignatureForRef(value, req.Cluster); signature != "" {
			environment[key] = signature
		}
	}

	for key, value := range a.AWSCredentials() {
		environment[key] = value
	}

	// Spark and the mesos framework run as root inside the container; the
	// full option string also travels in the environment so notebook kernels
	// pick it up.
	environment[common.EnvSparkUser] = "root"
	environment[common.EnvSparkOpts] = confStr

	if req.Cmd == CmdJupyter {
		jupyterDir := req.WorkDir.Container + "/.jupyter"
		environment[common.EnvJupyterRuntimeDir] = jupyterDir
		environment[common.EnvJupyterDataDir] = jupyterDir
	}
	return environment
}
