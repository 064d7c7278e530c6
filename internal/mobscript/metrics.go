// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

var programsRun = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mobscript_programs_run_total",
		Help: "Total number of program runs by event",
	},
	[]string{"event"},
)

var instructionsExecuted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mobscript_instructions_executed_total",
		Help: "Total number of executed action calls by instruction",
	},
	[]string{"instruction"},
)

var stateChanges = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "mobscript_state_changes_total",
		Help: "Total number of runs halted by a state change",
	},
)

var stepLimitHits = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "mobscript_step_limit_hits_total",
		Help: "Total number of runs halted by the step limit",
	},
)

var loadErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mobscript_load_errors_total",
		Help: "Total number of script load errors by code",
	},
	[]string{"code"},
)

var runSteps = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "mobscript_run_steps",
		Help:    "Number of action calls executed per program run",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	},
)

// RegisterMetrics registers mobscript metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(programsRun)
	reg.MustRegister(instructionsExecuted)
	reg.MustRegister(stateChanges)
	reg.MustRegister(stepLimitHits)
	reg.MustRegister(loadErrors)
	reg.MustRegister(runSteps)
}

func recordLoadError(err error) {
	code := errutil.Code(err)
	if code == "" {
		code = "unknown"
	}
	loadErrors.WithLabelValues(code).Inc()
}
