package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing sheetmap metrics.
//
// Metrics also implements observability.Observer, so it can be attached to the
// schema registry, the decoder and the MinIO client with WithObserver.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationSize     *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, wraps it with a constant `service`
// label, registers the operation metrics and creates an HTTP server exposing
// the /metrics endpoint.
//
// Parameters:
//   - cfg: Configuration for the metrics server
//
// Returns:
//   - *Metrics: A configured Metrics instance
//
// Registered metrics (namespace defaults to "sheetmap"):
//   - <ns>_operations_total{component,operation,status}
//   - <ns>_operation_duration_seconds{component,operation}
//   - <ns>_operation_items_total{component,operation}
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "sheetmap",
//	})
//	dec := decoder.NewDecoder(reg, conv).WithObserver(m)
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()

	// All metrics emitted by this service carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
	}

	m.operationsTotal = createCounterVec(
		cfg.Namespace+"_operations_total",
		"Total number of completed operations per component",
		[]string{"component", "operation", "status"},
	)
	m.operationDuration = createHistogramVec(
		cfg.Namespace+"_operation_duration_seconds",
		"Duration of completed operations in seconds",
		[]string{"component", "operation"},
		prometheus.DefBuckets,
	)
	m.operationSize = createCounterVec(
		cfg.Namespace+"_operation_items_total",
		"Items processed by completed operations (rows, bytes, schemas)",
		[]string{"component", "operation"},
	)

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.operationSize,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}
