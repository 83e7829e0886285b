// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

/*
Package metrics provides Prometheus instrumentation for the component
resolver and the recommenders it builds.

Collectors are package-level and registered with the default registry
through promauto. Callers use the Record* helpers rather than the
collectors directly.

# Available Metrics

Resolver Metrics:
  - recwire_resolutions_total: Top-level resolutions (counter)
    Labels: outcome (resolved, absent, error)
  - recwire_resolution_duration_seconds: Resolution latency (histogram)
    Labels: outcome
  - recwire_jit_bindings_total: Just-in-time adapters created (counter)
  - recwire_constructions_total: Constructions and injection-method calls (counter)
    Labels: kind (constructor, builder, setter), status (success, error)
  - recwire_cycles_detected_total: Cyclic dependencies detected (counter)
  - recwire_monitor_dependents: Keys depending on a watched type (gauge)
    Labels: watched

Recommender Metrics:
  - recwire_recommendations_total: Recommendation requests (counter)
    Labels: scorer, status (success, error, canceled)
  - recwire_recommendation_duration_seconds: Request latency (histogram)
    Labels: scorer
  - recwire_model_build_duration_seconds: Model build time (histogram)
    Labels: model

# Usage

	start := time.Now()
	v, err := c.Resolve(key)
	metrics.RecordResolution("resolved", time.Since(start))

Tests read values with prometheus/testutil:

	before := testutil.ToFloat64(metrics.JITBindingsTotal)
*/
package metrics
