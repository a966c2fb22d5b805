package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// UnresolvedEntities counts schedule entries served from inline fallback data.
	UnresolvedEntities = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coaching",
		Subsystem: "planning",
		Name:      "unresolved_entities_total",
		Help:      "Exercise or plate ids that could not be resolved from the record store.",
	})

	// ScheduleCells counts decoded day cells by storage variant.
	ScheduleCells = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coaching",
		Subsystem: "schedule",
		Name:      "cells_total",
		Help:      "Decoded schedule day cells grouped by storage variant.",
	}, []string{"variant"})

	// StatsFailures counts activities whose listing statistics fell back to zero.
	StatsFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "coaching",
		Subsystem: "catalog",
		Name:      "stats_failures_total",
		Help:      "Activities whose statistics computation failed, by category.",
	}, []string{"category"})

	// FinishedWorkshops counts workshops hidden from search because they are over.
	FinishedWorkshops = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "coaching",
		Subsystem: "catalog",
		Name:      "finished_workshops_total",
		Help:      "Workshops excluded from search results because their last date has passed.",
	})
)

func init() {
	prometheus.MustRegister(UnresolvedEntities, ScheduleCells, StatsFailures, FinishedWorkshops)
}
