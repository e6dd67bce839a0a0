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

import "errors"

// Every failure the launch pipeline can report maps to one of these
// sentinels. They all abort the invocation with exit status 1; none of them
// is retried.
var (
	ErrInvalidWorkDirFormat = errors.New("work-dir is not in format local_abs_dir:container_abs_dir")

	ErrNonAbsolutePath = errors.New("not an absolute path")

	ErrBuildCapabilityMissing = errors.New("a local Makefile with a 'cook-image' target is required for --build")

	ErrImageBuildFailed = errors.New("failed to build image")

	ErrImagePublishFailed = errors.New("failed to tag and push image")

	ErrImagePullFailed = errors.New("failed to pull image; are you authorized to run docker commands?")

	ErrSecretFileUnreadable = errors.New("cannot load mesos secret")

	ErrNoCommandSpecified = errors.New("a command is required: pyspark, spark-shell, spark-submit or jupyter")
)
