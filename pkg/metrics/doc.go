// Package metrics exposes Prometheus counters for form validation.
//
// Collector owns its own registry, so several collectors (one per test, for
// example) never clash. It implements formvalidator.Observer for engines running
// on the server, and records server-side preset validations and rules file reloads:
//
//	col := metrics.NewCollector("formvalidation")
//	eng := formvalidator.New(doc, formvalidator.WithObserver(col))
//	r.Handle("/metrics", col.Handler())
package metrics
