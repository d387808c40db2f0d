// Package middleware provides HTTP middleware shared by all routes: trace IDs
// with request-scoped loggers, and Prometheus request metrics.
package middleware
