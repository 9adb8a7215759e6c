// Package metrics declares the Prometheus collectors shared by the API and
// the worker, registered on the default registry and served at /metrics.
package metrics
