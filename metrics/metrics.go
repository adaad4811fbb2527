// Package metrics provides Prometheus observability metrics for the staffing
// planner. It includes Critical and Important metrics for business and
// operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// PlannerPeakRequired tracks the busiest interval's required agent count.
// It anchors the scenario multiplier, so drift here moves every interval.
var PlannerPeakRequired = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "peak_required_agents",
	Help:      "Required agents in the single busiest interval of the forecast",
})

// PlannerMultiplier tracks the uniform rescaling ratio of the last scenario.
// Values below 1 mean the budget sits under the peak requirement.
var PlannerMultiplier = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "scenario_multiplier",
	Help:      "Ratio of the concurrent-agent budget to the peak requirement",
})

// PlannerScheduledTotal tracks total scheduled agents across all intervals.
var PlannerScheduledTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "scheduled_agents_total",
	Help:      "Total scheduled agents across all intervals after rescaling",
})

// PlannerCapacityTotal tracks total estimated call capacity of the scenario.
var PlannerCapacityTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "capacity_calls_total",
	Help:      "Total estimated handled-call capacity across all intervals",
})

// PlannerUnderstaffed tracks intervals whose scheduled count fell below
// their own requirement after rescaling.
var PlannerUnderstaffed = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "understaffed_intervals",
	Help:      "Number of intervals scheduled below their required agent count",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserCellsDefaulted tracks malformed source cells degraded to zero.
var ParserCellsDefaulted = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "cells_defaulted_total",
	Help:      "Total non-numeric source cells silently treated as zero",
})

// ParserIntervalsTotal tracks the size of the last ingested interval set.
var ParserIntervalsTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "parser",
	Name:      "intervals_total",
	Help:      "Number of forecast intervals produced by the last ingestion",
})

// ParserDurationSeconds tracks time to ingest a forecast workbook.
var ParserDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to build the forecast from the source matrices",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// PlannerDurationSeconds tracks time to generate a scenario.
var PlannerDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "planner",
	Name:      "duration_seconds",
	Help:      "Time taken to rescale the forecast under the budget",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// ExportSheetsWritten tracks sheets written into plan bundles.
var ExportSheetsWritten = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "export",
	Name:      "sheets_written_total",
	Help:      "Total sheets written into exported plan bundles",
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetPlannerGauges resets all planner gauges before a new scenario run.
// Call this at the start of GenerateScenario.
func ResetPlannerGauges() {
	PlannerPeakRequired.Set(0)
	PlannerMultiplier.Set(0)
	PlannerScheduledTotal.Set(0)
	PlannerCapacityTotal.Set(0)
	PlannerUnderstaffed.Set(0)
}
