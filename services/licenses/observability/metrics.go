// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the licenses
// service. Metrics are exposed on /metrics; all operations are thread-safe
// via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "osli"
const licensesSubsystem = "licenses"

// LicenseMetrics holds all Prometheus metrics for the licenses service.
// Initialize once at startup via InitMetrics().
type LicenseMetrics struct {
	// RequestsTotal counts API requests by endpoint and status.
	// Labels: endpoint (compatibility, audit, conflicts, ...), status (success, error)
	RequestsTotal *prometheus.CounterVec

	// AuditDependenciesTotal counts dependencies processed by audit verdict.
	// Labels: status (SAFE, WARN, UNKNOWN)
	AuditDependenciesTotal *prometheus.CounterVec

	// RegistryFetchesTotal counts npm registry lookups by outcome.
	// Labels: outcome (ok, not_found, unavailable)
	RegistryFetchesTotal *prometheus.CounterVec

	// LLMCallsTotal counts generative backend calls by endpoint and status.
	// Labels: endpoint, status (success, error)
	LLMCallsTotal *prometheus.CounterVec

	// AuditDurationSeconds measures end-to-end audit latency.
	AuditDurationSeconds prometheus.Histogram
}

// DefaultMetrics is the singleton instance, set by InitMetrics(). Handlers
// treat a nil DefaultMetrics as metrics-disabled.
var DefaultMetrics *LicenseMetrics

// InitMetrics creates and registers all metrics. Call once at startup;
// calling twice panics on duplicate registration.
func InitMetrics() *LicenseMetrics {
	DefaultMetrics = &LicenseMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: licensesSubsystem,
				Name:      "requests_total",
				Help:      "Total API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		AuditDependenciesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: licensesSubsystem,
				Name:      "audit_dependencies_total",
				Help:      "Dependencies processed by audit verdict",
			},
			[]string{"status"},
		),
		RegistryFetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: licensesSubsystem,
				Name:      "registry_fetches_total",
				Help:      "npm registry lookups by outcome",
			},
			[]string{"outcome"},
		),
		LLMCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: licensesSubsystem,
				Name:      "llm_calls_total",
				Help:      "Generative backend calls by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),
		AuditDurationSeconds: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: licensesSubsystem,
				Name:      "audit_duration_seconds",
				Help:      "End-to-end audit request duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
	return DefaultMetrics
}

// RecordRequest records a completed API request.
func (m *LicenseMetrics) RecordRequest(endpoint string, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordAuditVerdict records one dependency verdict within an audit.
func (m *LicenseMetrics) RecordAuditVerdict(status string) {
	if m == nil {
		return
	}
	m.AuditDependenciesTotal.WithLabelValues(status).Inc()
}

// RecordRegistryFetch records an npm registry lookup outcome.
func (m *LicenseMetrics) RecordRegistryFetch(outcome string) {
	if m == nil {
		return
	}
	m.RegistryFetchesTotal.WithLabelValues(outcome).Inc()
}

// RecordLLMCall records a generative backend call.
func (m *LicenseMetrics) RecordLLMCall(endpoint string, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.LLMCallsTotal.WithLabelValues(endpoint, status).Inc()
}

// ObserveAuditDuration records the end-to-end audit latency.
func (m *LicenseMetrics) ObserveAuditDuration(seconds float64) {
	if m == nil {
		return
	}
	m.AuditDurationSeconds.Observe(seconds)
}
