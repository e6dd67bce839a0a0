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

package sparkrun

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kkellyy/paasta/internal/config"
	"github.com/kkellyy/paasta/internal/mesos"
	"github.com/kkellyy/paasta/internal/metrics"
	"github.com/kkellyy/paasta/internal/processes"
	"github.com/kkellyy/paasta/internal/secrets"
	"github.com/kkellyy/paasta/internal/soaconfig"
	"github.com/kkellyy/paasta/internal/spark"
	"github.com/kkellyy/paasta/pkg/common"
	"github.com/kkellyy/paasta/pkg/util"
)

// Clusters a Spark driver may be pointed at. Batch clusters are excluded on
// purpose: interactive drivers would starve scheduled workloads there.
var allowedClusters = []string{"norcal-devc", "pnw-devc", "mesosstage"}

var (
	service  string
	instance string
	cluster  string
	pool     string

	buildImage bool
	image      string

	sparkCmd string
	jars     string
	workDir  string
	soaDir   string

	mesosPrincipal string
	mesosSecret    string

	maxCores       int
	executorMemory int
	executorCores  int

	driverMaxResultSize int
	driverMemory        int
	driverCores         int

	systemConfigDir string
	dryRun          bool
)

func NewCommand(logger *zap.SugaredLogger) *cobra.Command {
	command := &cobra.Command{
		Use:   "spark-run",
		Short: "Launch a Spark driver in a container on a PaaSTA cluster",
		Long: `Launch a Spark driver in a container on a PaaSTA cluster.

The driver runs on the local host with the current working directory
mounted inside the container; executors are scheduled on the cluster.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, logger)
		},
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/tmp"
	}

	flags := command.Flags()
	flags.StringVarP(&service, "service", "s", "spark", "The name of the service from which the Spark image is built.")
	flags.StringVarP(&instance, "instance", "i", "client", "The instance whose configuration to run with.")
	flags.StringVarP(&cluster, "cluster", "c", "", fmt.Sprintf("The cluster to run Spark on (one of: %s).", strings.Join(allowedClusters, ", ")))
	flags.StringVarP(&pool, "pool", "p", "default", "The resource pool to run the Spark job in.")
	flags.BoolVarP(&buildImage, "build", "b", false, "Build the image from the service's cook-image target before running.")
	flags.StringVarP(&image, "image", "I", "", "Run with this exact Docker image instead of resolving one.")
	flags.StringVarP(&sparkCmd, "cmd", "C", "pyspark", "The command to run inside the container (pyspark, spark-shell, spark-submit <args>, jupyter, or any shell command).")
	flags.StringVarP(&jars, "jars", "j", "", "Comma-separated list of jars to ship to the executors.")
	flags.StringVarP(&workDir, "work-dir", "w", cwd+":"+common.DefaultSparkWorkDir, "The host:container work directory mapping.")
	flags.StringVarP(&soaDir, "yelpsoa-config-root", "y", common.DefaultSOADir, "The root of the yelpsoa-configs checkout to read from.")
	flags.StringVar(&mesosPrincipal, "mesos-principal", "spark", "The Mesos framework principal to authenticate as.")
	flags.StringVar(&mesosSecret, "mesos-secret", "", "The Mesos framework secret; read from the shared secret file when unset.")
	flags.IntVar(&maxCores, "max-cores", 4, "The maximum total executor cores for the job.")
	flags.IntVar(&executorMemory, "executor-memory", 4, "The memory per executor, in GiB.")
	flags.IntVar(&executorCores, "executor-cores", 2, "The cores per executor.")
	flags.IntVar(&driverMaxResultSize, "driver-max-result-size", 0, "The driver's max result size, in GiB (0 leaves the Spark default).")
	flags.IntVar(&driverMemory, "driver-memory", 0, "The driver's memory, in GiB (0 leaves the Spark default).")
	flags.IntVar(&driverCores, "driver-cores", 0, "The driver's cores (0 leaves the Spark default).")
	flags.StringVar(&systemConfigDir, "system-config-dir", config.DefaultSystemConfigDir, "The directory holding the host-wide paasta configuration.")
	flags.BoolVarP(&dryRun, "dry-run", "d", false, "Print the docker invocation as JSON instead of executing it.")

	command.MarkFlagsMutuallyExclusive("build", "image")
	// cobra's required-flag error does not mention the allow-list, so the
	// cluster flag is validated by hand in run.

	return command
}

func run(cmd *cobra.Command, logger *zap.SugaredLogger) error {
	logger = logger.With("run_id", uuid.New().String())
	ctx := cmd.Context()

	if !util.ContainsString(allowedClusters, cluster) {
		return fmt.Errorf("cluster %q is not supported for Spark, pick one of: %s", cluster, strings.Join(allowedClusters, ", "))
	}

	workDirMapping, err := spark.ValidateWorkDir(workDir)
	if err != nil {
		return err
	}

	systemConfig, err := config.Load(systemConfigDir)
	if err != nil {
		if !errors.Is(err, config.ErrNotConfigured) {
			return err
		}
		logger.Warnw("no system paasta configuration found, using defaults", "dir", systemConfigDir)
		systemConfig = config.Fallback(systemConfigDir)
	}

	// Deployment records are only consulted when the image has to be
	// resolved from what is deployed; building, or naming an image
	// explicitly, must work on boxes that have never been deployed to.
	loadDeployments := !buildImage && image == ""
	inst, err := soaconfig.LoadInstanceConfig(soaDir, service, instance, cluster, loadDeployments)
	if err != nil {
		return err
	}

	meters, err := metrics.New(systemConfig.MetricsProvider, common.MetricsBaseName, logger)
	if err != nil {
		return err
	}
	launchTimer := meters.NewTimer(common.MetricLaunchDurationSeconds)
	launchTimer.Start()

	secretProviderName := systemConfig.SecretProvider
	if secretProviderName == "" {
		secretProviderName = secrets.DefaultProviderName
	}
	secretProvider, err := secrets.NewProvider(secretProviderName, soaDir, service, logger)
	if err != nil {
		return err
	}

	registry := systemConfig.DockerRegistry
	if registry == "" {
		registry = common.DefaultSparkDockerRegistry
	}

	runner := processes.NewShellRunner(logger)
	resolver := spark.NewImageResolver(runner, registry, util.GetUsername(), logger)

	imageTimer := meters.NewTimer(common.MetricImagePullDurationSeconds)
	if buildImage {
		imageTimer = meters.NewTimer(common.MetricImageBuildDurationSeconds)
	}
	imageTimer.Start()
	resolved, err := resolver.Resolve(ctx, spark.ImageRequest{
		Build:    buildImage,
		Image:    image,
		Service:  service,
		Instance: inst,
	})
	if err != nil {
		return err
	}
	imageTimer.Stop()

	leader := mesos.NewLeaderFinder()
	assembler := spark.NewAssembler(spark.NewSynthesizer(leader), systemConfig, secretProvider, logger)

	plan, err := assembler.Assemble(ctx, &spark.LaunchRequest{
		Service:             service,
		Instance:            instance,
		Cluster:             cluster,
		Pool:                pool,
		Cmd:                 sparkCmd,
		Jars:                jars,
		WorkDir:             workDirMapping,
		MesosPrincipal:      mesosPrincipal,
		MesosSecret:         mesosSecret,
		MaxCores:            maxCores,
		ExecutorMemory:      executorMemory,
		ExecutorCores:       executorCores,
		DriverMaxResultSize: driverMaxResultSize,
		DriverMemory:        driverMemory,
		DriverCores:         driverCores,
		Build:               buildImage,
		Image:               image,
		DryRun:              dryRun,
	}, resolved, inst)
	if err != nil {
		return err
	}

	meters.NewGauge(common.MetricUIPort).Set(float64(plan.UIPort))
	launchTimer.Stop()
	flushMetrics(meters, systemConfig, logger)

	// On success this replaces the process and never returns.
	return spark.NewExecutor(logger).Run(plan)
}

// flushMetrics pushes batched metrics before the process image is replaced.
// Failure to push never fails the launch.
func flushMetrics(meters metrics.Metrics, systemConfig *config.SystemConfig, logger *zap.SugaredLogger) {
	flusher, ok := meters.(metrics.Flusher)
	if !ok || systemConfig.MetricsGateway == "" {
		return
	}
	if err := flusher.Flush(systemConfig.MetricsGateway, common.MetricsBaseName); err != nil {
		logger.Warnw("failed to push metrics", "gateway", systemConfig.MetricsGateway, "error", err)
	}
}
