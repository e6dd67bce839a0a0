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

// Package mesos talks to the Mesos master discovery endpoint of a cluster.
package mesos

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// MasterPort is the fixed port Mesos masters listen on.
const MasterPort = 5050

// LeaderResolver resolves the address of a cluster's leading master.
type LeaderResolver interface {
	// MasterAddress returns "<leader host>:<master port>" for the cluster
	// reachable at clusterFQDN.
	MasterAddress(ctx context.Context, clusterFQDN string) (string, error)
}

// LeaderFinder discovers the leading master by asking any master at the
// cluster's well-known name to redirect to the current leader.
type LeaderFinder struct {
	Client *http.Client
	Port   int
}

// NewLeaderFinder returns a LeaderFinder probing the fixed master port with a
// bounded request timeout.
func NewLeaderFinder() *LeaderFinder {
	return &LeaderFinder{
		Client: &http.Client{Timeout: 10 * time.Second},
		Port:   MasterPort,
	}
}

func (f *LeaderFinder) MasterAddress(ctx context.Context, clusterFQDN string) (string, error) {
	url := fmt.Sprintf("http://%s:%d/redirect", clusterFQDN, f.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to find mesos leader for %s: %w", clusterFQDN, err)
	}
	defer resp.Body.Close()

	// The client followed the redirect; the final request URL names the
	// leading master.
	leader := resp.Request.URL.Hostname()
	if leader == "" {
		return "", fmt.Errorf("mesos leader redirect for %s yielded no host", clusterFQDN)
	}
	port := resp.Request.URL.Port()
	if port == "" {
		port = fmt.Sprintf("%d", f.Port)
	}
	return fmt.Sprintf("%s:%s", leader, port), nil
}
