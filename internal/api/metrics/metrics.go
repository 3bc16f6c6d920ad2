// Package metrics defines and registers all custom Prometheus metrics for the
// office console API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// /metrics endpoint exposes them alongside the per-route HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Work-log metrics ──────────────────────────────────────────────────────────

// WorkLogsCreatedTotal counts successfully created work logs.
var WorkLogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "worklogs_created_total",
		Help:      "Total number of work logs created.",
	},
)

// WorkLogMinutesAdjusted observes the adjusted duration of each created work
// log, in minutes. The sum tracks total billable time flowing through the
// system.
var WorkLogMinutesAdjusted = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "worklog_minutes_adjusted",
		Help:      "Adjusted duration of created work logs, in minutes.",
		Buckets:   []float64{15, 30, 60, 120, 240, 480, 960},
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsBuiltTotal counts report requests served.
// Label:
//   - level: "projects", "modules", "tasks", or "tree"
var ReportsBuiltTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_built_total",
		Help:      "Total number of work-log reports served, by tree level.",
	},
	[]string{"level"},
)

// ReportBuildDuration measures how long building one report level takes,
// cache included.
// Label:
//   - level: "projects", "modules", "tasks", or "tree"
var ReportBuildDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_duration_seconds",
		Help:      "Duration of report aggregation from request to response.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"level"},
)

// ReportExportsTotal counts spreadsheet exports served.
var ReportExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_exports_total",
		Help:      "Total number of work-log report spreadsheets exported.",
	},
)
