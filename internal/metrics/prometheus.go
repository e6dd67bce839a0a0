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
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// prometheusMetrics records into a process-local registry. For a one-shot
// launcher there is nothing to scrape, so the registry is handed to a
// pushgateway on Flush when one is configured.
type prometheusMetrics struct {
	baseName string
	registry *prometheus.Registry
}

func newPrometheusMetrics(baseName string) *prometheusMetrics {
	return &prometheusMetrics{
		baseName: strings.ReplaceAll(baseName, "-", "_"),
		registry: prometheus.NewRegistry(),
	}
}

func (m *prometheusMetrics) NewTimer(name string) Timer {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.baseName,
		Name:      name,
	})
	m.registry.MustRegister(gauge)
	return &prometheusTimer{gauge: gauge}
}

func (m *prometheusMetrics) NewGauge(name string) Gauge {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.baseName,
		Name:      name,
	})
	m.registry.MustRegister(gauge)
	return gauge
}

// Flush pushes the collected metrics to the given pushgateway.
func (m *prometheusMetrics) Flush(gatewayURL, job string) error {
	return push.New(gatewayURL, job).Gatherer(m.registry).Push()
}

type prometheusTimer struct {
	gauge   prometheus.Gauge
	started time.Time
}

func (t *prometheusTimer) Start() {
	t.started = time.Now()
}

func (t *prometheusTimer) Stop() {
	t.gauge.Set(time.Since(t.started).Seconds())
}
