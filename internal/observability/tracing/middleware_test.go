package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// installRecorder swaps in an SDK provider with an in-memory exporter for the test.
func installRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return exporter
}

func serve(status int, method, target string, hdr http.Header) *httptest.ResponseRecorder {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header[k] = v
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func attrs(span tracetest.SpanStub) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(span.Attributes))
	for _, kv := range span.Attributes {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestMiddleware_SpanUsesNormalizedRoute(t *testing.T) {
	exporter := installRecorder(t)

	serve(http.StatusOK, http.MethodPost, "/stories/42/votes", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST /stories/:id/votes", spans[0].Name)

	a := attrs(spans[0])
	assert.Equal(t, "POST", a["http.method"].AsString())
	assert.Equal(t, "/stories/:id/votes", a["http.route"].AsString())
	assert.Equal(t, "/stories/42/votes", a["http.target"].AsString())
	assert.Equal(t, int64(200), a["http.status_code"].AsInt64())
}

func TestMiddleware_TraceIDHeader(t *testing.T) {
	installRecorder(t)

	rr := serve(http.StatusOK, http.MethodGet, "/stories", nil)

	assert.Len(t, rr.Header().Get(TraceIDHeader), 32)
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter := installRecorder(t)

	hdr := http.Header{}
	hdr.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rr := serve(http.StatusOK, http.MethodGet, "/stories", hdr)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rr.Header().Get(TraceIDHeader))
}

func TestMiddleware_Status(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   codes.Code
	}{
		{name: "ok", status: http.StatusOK, want: codes.Unset},
		{name: "not found", status: http.StatusNotFound, want: codes.Unset},
		{name: "server error", status: http.StatusInternalServerError, want: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := installRecorder(t)

			serve(tt.status, http.MethodDelete, "/stories/7", nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.want, spans[0].Status.Code)
		})
	}
}

func TestMiddleware_UnknownPathsCollapse(t *testing.T) {
	exporter := installRecorder(t)

	serve(http.StatusNotFound, http.MethodGet, "/wp-admin/setup.php", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /:unmatched", spans[0].Name)
}
