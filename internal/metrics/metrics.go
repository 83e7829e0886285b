// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolver and recommender instrumentation.
// Collectors are registered with the default registry at package init.

var (
	// Resolver Metrics
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recwire_resolutions_total",
			Help: "Total number of top-level component resolutions",
		},
		[]string{"outcome"}, // "resolved", "absent", "error"
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recwire_resolution_duration_seconds",
			Help:    "Duration of top-level component resolutions in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1, 1, 10},
		},
		[]string{"outcome"},
	)

	JITBindingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recwire_jit_bindings_total",
			Help: "Total number of just-in-time adapters created",
		},
	)

	ConstructionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recwire_constructions_total",
			Help: "Total number of component constructions and injection-method calls",
		},
		[]string{"kind", "status"}, // kind: "constructor", "builder", "setter"
	)

	CyclesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recwire_cycles_detected_total",
			Help: "Total number of cyclic dependencies detected during resolution",
		},
	)

	MonitorDependents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recwire_monitor_dependents",
			Help: "Number of keys known to depend on a watched type",
		},
		[]string{"watched"},
	)

	// Recommender Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recwire_recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"scorer", "status"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recwire_recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scorer"},
	)

	ModelBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recwire_model_build_duration_seconds",
			Help:    "Duration of model builds in seconds",
			Buckets: []float64{.001, .01, .1, .5, 1, 5, 30},
		},
		[]string{"model"},
	)
)

// RecordResolution records a top-level resolution and its duration.
func RecordResolution(outcome string, duration time.Duration) {
	ResolutionsTotal.WithLabelValues(outcome).Inc()
	ResolutionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordJITBinding records the creation of a just-in-time adapter.
func RecordJITBinding() {
	JITBindingsTotal.Inc()
}

// RecordConstruction records a construction attempt by adapter kind.
func RecordConstruction(kind string, err error) {
	ConstructionsTotal.WithLabelValues(kind, status(err)).Inc()
}

// RecordCycle records a detected cyclic dependency.
func RecordCycle() {
	CyclesDetected.Inc()
}

// SetMonitorDependents sets the number of dependents of a watched type.
func SetMonitorDependents(watched string, n int) {
	MonitorDependents.WithLabelValues(watched).Set(float64(n))
}

// RecordRecommendation records a recommendation request.
func RecordRecommendation(scorer string, duration time.Duration, err error) {
	RecommendationsTotal.WithLabelValues(scorer, status(err)).Inc()
	RecommendationDuration.WithLabelValues(scorer).Observe(duration.Seconds())
}

// RecordModelBuild records the duration of a model build.
func RecordModelBuild(model string, duration time.Duration) {
	ModelBuildDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// status maps an error to a status label. Context cancellation is reported
// separately from failures.
func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
