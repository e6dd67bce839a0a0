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

package common

// Spark environment variables.
const (
	EnvSparkOpts = "SPARK_OPTS"

	EnvSparkUser = "SPARK_USER"

	EnvAWSAccessKeyID = "AWS_ACCESS_KEY_ID"

	EnvAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"

	EnvJupyterRuntimeDir = "JUPYTER_RUNTIME_DIR"

	EnvJupyterDataDir = "JUPYTER_DATA_DIR"

	EnvDockerTag = "DOCKER_TAG"
)

// Spark properties.
const (
	// SparkAppName is the configuration property for application name.
	SparkAppName = "spark.app.name"

	SparkUIPort = "spark.ui.port"

	SparkMaster = "spark.master"

	SparkCoresMax = "spark.cores.max"

	SparkExecutorMemory = "spark.executor.memory"

	SparkExecutorCores = "spark.executor.cores"

	SparkDriverMaxResultSize = "spark.driver.maxResultSize"

	SparkDriverMemory = "spark.driver.memory"

	SparkDriverCores = "spark.driver.cores"

	SparkJars = "spark.jars"

	SparkDriverExtraJavaOptions = "spark.driver.extraJavaOptions"
)

// Spark on Mesos properties.
const (
	// SparkMesosExecutorDockerImage is the configuration property for the image
	// Mesos agents pull to run executors.
	SparkMesosExecutorDockerImage = "spark.mesos.executor.docker.image"

	// SparkMesosExecutorDockerVolumes is the configuration property for the
	// comma-separated list of volumes mounted into executor containers.
	SparkMesosExecutorDockerVolumes = "spark.mesos.executor.docker.volumes"

	// SparkMesosURIs is the configuration property for extra URIs fetched into
	// the executor sandbox, used here to ship registry credentials.
	SparkMesosURIs = "spark.mesos.uris"

	SparkMesosPrincipal = "spark.mesos.principal"

	SparkMesosSecret = "spark.mesos.secret"

	SparkMesosConstraints = "spark.mesos.constraints"
)

// Launcher defaults.
const (
	// DefaultSparkWorkDir is the container-side work directory mounted rw.
	DefaultSparkWorkDir = "/spark_driver"

	// DefaultSparkDockerImagePrefix prefixes locally built image tags.
	DefaultSparkDockerImagePrefix = "paasta-spark-run"

	// DefaultSparkDockerRegistry receives images built with --build.
	DefaultSparkDockerRegistry = "docker-dev.yelpcorp.com"

	// DefaultSparkMesosSecretFile holds the framework shared secret read when
	// --mesos-secret is not supplied.
	DefaultSparkMesosSecretFile = "/nail/etc/paasta_spark_secret"

	// DefaultSOADir is where per-service declarative configs live.
	DefaultSOADir = "/nail/etc/services"

	// DerbySystemHomeOption relocates derby.system.home, which otherwise
	// defaults to '.' and requires directory permission changes inside the
	// container.
	DerbySystemHomeOption = "-Dderby.system.home=/tmp/derby"

	// DockerCfgURI is the registry credential file shipped to executors when
	// the image came from deployment metadata and may be private.
	DockerCfgURI = "file:///root/.dockercfg"

	// DockerWrapper is the external program that performs the docker run.
	DockerWrapper = "paasta_docker_wrapper"
)
