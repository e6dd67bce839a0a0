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
	"time"

	"go.uber.org/zap"

	"github.com/kkellyy/paasta/internal/processes"
	"github.com/kkellyy/paasta/internal/soaconfig"
	"github.com/kkellyy/paasta/pkg/common"
)

// ImageSource records which of the three mutually exclusive resolution paths
// produced an image.
type ImageSource int

const (
	// ImageSourceDeployment means the image came from deployment metadata and
	// may live in a private registry.
	ImageSourceDeployment ImageSource = iota
	// ImageSourceBuilt means the image was cooked locally and pushed.
	ImageSourceBuilt
	// ImageSourceExplicit means the user supplied the reference verbatim.
	ImageSourceExplicit
)

// ResolvedImage names the container image the job will run in.
type ResolvedImage struct {
	URL    string
	Source ImageSource
}

// ImageRequest selects the resolution mode. Build and Image are mutually
// exclusive; with neither set the image is resolved from the instance's
// deployment records.
type ImageRequest struct {
	Build    bool
	Image    string
	Service  string
	Instance *soaconfig.InstanceConfig
}

// ImageResolver resolves, and where necessary builds or pulls, the container
// image for a launch.
type ImageResolver struct {
	Runner      processes.Runner
	Registry    string
	Username    string
	PullTimeout time.Duration
	Out         io.Writer
	Logger      *zap.SugaredLogger
}

// NewImageResolver returns a resolver with the default 5 minute pull timeout.
func NewImageResolver(runner processes.Runner, registry, username string, logger *zap.SugaredLogger) *ImageResolver {
	return &ImageResolver{
		Runner:      runner,
		Registry:    registry,
		Username:    username,
		PullTimeout: 5 * time.Minute,
		Out:         os.Stderr,
		Logger:      logger,
	}
}

func (r *ImageResolver) Resolve(ctx context.Context, req ImageRequest) (ResolvedImage, error) {
	switch {
	case req.Build:
		url, err := r.buildAndPush(ctx, req)
		if err != nil {
			return ResolvedImage{}, err
		}
		return ResolvedImage{URL: url, Source: ImageSourceBuilt}, nil
	case req.Image != "":
		return ResolvedImage{URL: req.Image, Source: ImageSourceExplicit}, nil
	default:
		url, err := r.pullDeployed(ctx, req)
		if err != nil {
			return ResolvedImage{}, err
		}
		return ResolvedImage{URL: url, Source: ImageSourceDeployment}, nil
	}
}

// buildAndPush cooks an image with the service's Makefile, re-tags it with a
// registry-qualified name and pushes it so executors can pull it.
func (r *ImageResolver) buildAndPush(ctx context.Context, req ImageRequest) (string, error) {
	responds, err := r.makefileRespondsTo(ctx, "cook-image")
	if err != nil {
		return "", err
	}
	if !responds {
		return "", ErrBuildCapabilityMissing
	}

	tag := os.Getenv(common.EnvDockerTag)
	if tag == "" {
		tag = fmt.Sprintf("%s-%s", common.DefaultSparkDockerImagePrefix, r.Username)
	}

	code, err := r.Runner.Run(ctx, fmt.Sprintf("%s=%s make cook-image", common.EnvDockerTag, tag))
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", fmt.Errorf("%w: cook-image exited %d", ErrImageBuildFailed, code)
	}

	url := fmt.Sprintf("%s/%s", r.Registry, tag)
	for _, command := range []string{
		fmt.Sprintf("docker tag %s %s", tag, url),
		fmt.Sprintf("docker push %s", url),
	} {
		fmt.Fprintln(r.Out, command)
		code, err := r.Runner.Run(ctx, command)
		if err != nil {
			return "", err
		}
		if code != 0 {
			return "", fmt.Errorf("%w: %q exited %d", ErrImagePublishFailed, command, code)
		}
	}
	return url, nil
}

// pullDeployed resolves the image from deployment metadata and pulls it onto
// the local machine so the driver starts promptly.
func (r *ImageResolver) pullDeployed(ctx context.Context, req ImageRequest) (string, error) {
	url, err := req.Instance.DockerURL(r.Registry)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(r.Out, "Please wait while the image (%s) is pulled (times out after %s)...\n",
		url, r.PullTimeout)

	pullCtx, cancel := context.WithTimeout(ctx, r.PullTimeout)
	defer cancel()

	code, err := r.Runner.Run(pullCtx, fmt.Sprintf("sudo -H docker pull %s", url))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImagePullFailed, err)
	}
	if code != 0 {
		return "", fmt.Errorf("%w: docker pull exited %d", ErrImagePullFailed, code)
	}
	return url, nil
}

// makefileRespondsTo probes for a Makefile target. `make -q` exits 2 when the
// target does not exist; 0 and 1 both mean it does.
func (r *ImageResolver) makefileRespondsTo(ctx context.Context, target string) (bool, error) {
	code, err := r.Runner.Run(ctx, fmt.Sprintf("make -q %s", target))
	if err != nil {
		return false, err
	}
	return code != 2, nil
}
