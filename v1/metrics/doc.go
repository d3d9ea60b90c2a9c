// Package metrics provides Prometheus-based monitoring for sheetmap.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: the contract consumers depend on
//   - Metrics struct: the Prometheus implementation, also an observability.Observer
//   - NewMetrics constructor: returns *Metrics
//   - FX module: provides *Metrics, MetricsCollector and observability.Observer
//
// Every sheetmap component that accepts an observer reports one
// OperationContext per completed operation. Metrics turns those reports into
// three series:
//
//	sheetmap_operations_total{component,operation,status}
//	sheetmap_operation_duration_seconds{component,operation}
//	sheetmap_operation_items_total{component,operation}
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "sheetmap",
//	})
//	go m.Server.ListenAndServe()
//
//	reg, err := schema_registry.NewBuilder(cfg).WithObserver(m).Build(ctx)
//
// # Custom metrics
//
//	rejected := m.CreateCounter("sheetmap_files_rejected_total", "Files refused by the upload filter", []string{"rule"})
//	rejected.WithLabelValues(sheet.RuleSize).Inc()
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package metrics
