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

// Package metrics provides the launcher's timer/gauge capability. The set of
// backends is closed: a backend is chosen once at process start from system
// configuration and handed to consumers explicitly.
package metrics

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Timer measures the duration between Start and Stop.
type Timer interface {
	Start()
	Stop()
}

// Gauge records a point-in-time value.
type Gauge interface {
	Set(value float64)
}

// Metrics creates named timers and gauges under a common base name.
type Metrics interface {
	NewTimer(name string) Timer
	NewGauge(name string) Gauge
}

// Flusher is implemented by backends that batch locally and emit on demand.
// One-shot processes flush once before exiting.
type Flusher interface {
	Flush(gatewayURL, job string) error
}

// New selects a backend by provider name. The empty name and "noop" are the
// log-only backend; "prometheus" records into a process-local registry.
func New(provider, baseName string, logger *zap.SugaredLogger) (Metrics, error) {
	switch provider {
	case "", "noop":
		return &noopMetrics{baseName: baseName, logger: logger}, nil
	case "prometheus":
		return newPrometheusMetrics(baseName), nil
	default:
		return nil, fmt.Errorf("unknown metrics provider %q", provider)
	}
}

type noopMetrics struct {
	baseName string
	logger   *zap.SugaredLogger
}

func (m *noopMetrics) NewTimer(name string) Timer {
	return &noopTimer{name: m.baseName + "." + name, logger: m.logger}
}

func (m *noopMetrics) NewGauge(name string) Gauge {
	return &noopGauge{name: m.baseName + "." + name, logger: m.logger}
}

type noopTimer struct {
	name    string
	logger  *zap.SugaredLogger
	started time.Time
}

func (t *noopTimer) Start() {
	t.started = time.Now()
	t.logger.Debugw("timer started", "name", t.name)
}

func (t *noopTimer) Stop() {
	t.logger.Debugw("timer stopped", "name", t.name, "elapsed", time.Since(t.started))
}

type noopGauge struct {
	name   string
	logger *zap.SugaredLogger
}

func (g *noopGauge) Set(value float64) {
	g.logger.Debugw("gauge set", "name", g.name, "value", value)
}
