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

// MetricsBaseName prefixes every metric emitted by the launcher.
const MetricsBaseName = "paasta-spark-run"

// Spark run metric names, emitted under MetricsBaseName.
const (
	MetricImagePullDurationSeconds = "image_pull_duration_seconds"

	MetricImageBuildDurationSeconds = "image_build_duration_seconds"

	MetricLaunchDurationSeconds = "launch_duration_seconds"

	MetricUIPort = "ui_port"
)
