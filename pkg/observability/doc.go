/*
Package observability provides Prometheus instrumentation for tool invocations.

Metrics are registered on a dedicated registry (not the global default) so that
tests and embedded servers can create independent instances. The SSE transport
exposes them on /metrics.
*/
package observability
