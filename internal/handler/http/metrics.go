package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"social-news/internal/handler/http/pathutil"
	"social-news/internal/handler/http/responsewriter"
	"social-news/internal/observability/metrics"
)

// MetricsMiddleware records request count, latency and sizes per normalized
// route, so /stories/1 and /stories/2 share a label set.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rec := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rec, r)

		metrics.RecordHTTPRequest(
			r.Method,
			pathutil.NormalizePath(r.URL.Path),
			strconv.Itoa(rec.Status()),
			time.Since(start),
			int(max(r.ContentLength, 0)),
			rec.Size(),
		)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
