// Package telemetry groups observability subpackages: structured
// logging and Prometheus metrics.
package telemetry
