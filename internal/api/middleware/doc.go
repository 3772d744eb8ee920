// Package middleware provides the HTTP middleware applied to every route:
// request tracing, Prometheus metrics and CORS.
package middleware
