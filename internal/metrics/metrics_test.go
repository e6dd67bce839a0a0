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

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kkellyy/paasta/pkg/common"
)

func TestNewSelectsBackend(t *testing.T) {
	logger := zap.NewNop().Sugar()

	testCases := []struct {
		provider string
		wantErr  bool
	}{
		{provider: ""},
		{provider: "noop"},
		{provider: "prometheus"},
		{provider: "meteorite", wantErr: true},
	}

	for _, tc := range testCases {
		m, err := New(tc.provider, common.MetricsBaseName, logger)
		if tc.wantErr {
			assert.Error(t, err, "provider %q", tc.provider)
			continue
		}
		require.NoError(t, err, "provider %q", tc.provider)
		assert.NotNil(t, m)
	}
}

func TestNoopTimerAndGauge(t *testing.T) {
	m, err := New("noop", common.MetricsBaseName, zap.NewNop().Sugar())
	require.NoError(t, err)

	timer := m.NewTimer("launch_duration_seconds")
	timer.Start()
	timer.Stop()

	m.NewGauge("ui_port").Set(33000)
}

func TestPrometheusTimerRecords(t *testing.T) {
	m := newPrometheusMetrics("paasta-spark-run")

	timer := m.NewTimer("launch_duration_seconds")
	timer.Start()
	timer.Stop()

	families, err := m.registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "paasta_spark_run_launch_duration_seconds", families[0].GetName())
}
