// Package tracing wires OpenTelemetry into the HTTP server.
//
// Init installs an SDK tracer provider when TRACING_ENABLED is set; Middleware
// starts a server span per request and echoes the trace ID in X-Trace-Id.
//
//	shutdown, err := tracing.Init(ctx, tracing.Config{Enabled: true, ServiceName: "social-news", SampleRatio: 1})
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
//
//	handler := tracing.Middleware(mux)
package tracing
