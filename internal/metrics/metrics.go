/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	namespace = "platform_repository"
)

const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusNotFound = "not_found"
)

var (
	once     sync.Once
	registry *prometheus.Registry

	// Metric variables start as noops so repositories can record before Init runs.
	OperationsTotal          CounterVec   = noopCounterVec{}
	OperationDurationSeconds HistogramVec = noopHistogramVec{}
	MediaBytesTotal          CounterVec   = noopCounterVec{}
	Info                     GaugeVec     = noopGaugeVec{}
)

// initMetrics initializes all metric variables.
// This must be called after SetEnabled() to ensure proper noop behavior when disabled.
func initMetrics() {
	OperationsTotal = newCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of repository operations",
		},
		[]string{"backend", "entity", "operation", "status"},
	)

	OperationDurationSeconds = newHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of repository operations in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"backend", "entity", "operation"},
	)

	MediaBytesTotal = newCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_bytes_total",
			Help:      "Total number of media bytes written",
		},
		[]string{"backend"},
	)

	Info = newGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "info",
			Help:      "Active repository backend",
		},
		[]string{"backend"},
	)
}

func registerCollector(c prometheus.Collector) {
	if !Enabled {
		return
	}
	// Already registered collectors are ignored
	_ = registry.Register(c)
}

func initRegistry() {
	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if w, ok := OperationsTotal.(*counterVecWrapper); ok {
		registerCollector(w.CounterVec)
	}
	if w, ok := OperationDurationSeconds.(*histogramVecWrapper); ok {
		registerCollector(w.HistogramVec)
	}
	if w, ok := MediaBytesTotal.(*counterVecWrapper); ok {
		registerCollector(w.CounterVec)
	}
	if w, ok := Info.(*gaugeVecWrapper); ok {
		registerCollector(w.GaugeVec)
	}
}

// Init initializes the metrics registry with all collectors.
// This must be called after SetEnabled() has been called.
func Init() *prometheus.Registry {
	once.Do(func() {
		initMetrics()

		if !Enabled {
			registry = prometheus.NewRegistry()
			return
		}
		initRegistry()
	})

	return registry
}

// GetRegistry returns the prometheus registry
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return Init()
	}
	return registry
}

// ObserveOperation records the outcome and latency of one repository call
func ObserveOperation(backend, entity, operation string, start time.Time, status string) {
	OperationsTotal.WithLabelValues(backend, entity, operation, status).Inc()
	OperationDurationSeconds.WithLabelValues(backend, entity, operation).Observe(time.Since(start).Seconds())
}
