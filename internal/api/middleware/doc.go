// Package middleware holds the HTTP middleware: bearer-token authentication,
// per-request trace IDs with a context logger, and Prometheus metrics.
package middleware
