package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/sheetmap/v1/observability"
)

// MetricsCollector is an observability.Observer that also lets callers
// register their own counters on the same registry.
type MetricsCollector interface {
	observability.Observer

	// CreateCounter creates a new CounterVec metric and registers it, or
	// returns the one registered earlier under the same definition.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec
}
