// Package observability groups the logging, metrics and tracing helpers shared by
// cmd/api and cmd/scrape.
//
//   - logging: JSON slog loggers, request-scoped loggers in the context
//   - metrics: Prometheus collectors for HTTP, stories, scrape runs and the pool
//   - tracing: SDK tracer provider setup and the server span middleware
package observability
