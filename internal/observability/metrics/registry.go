package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routeLabels  = []string{"method", "path", "status"}
	sizeLabels   = []string{"method", "path"}
	sizeBuckets  = prometheus.ExponentialBuckets(100, 10, 8) // 100B .. 1GB
	latencySteps = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
)

// HTTP. Paths are normalized (pathutil.NormalizePath) so label cardinality stays bounded.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, normalized path and status code.",
	}, routeLabels)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time from first byte read to handler return.",
		Buckets:   latencySteps,
	}, routeLabels)

	HTTPRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http",
		Name:      "request_size_bytes",
		Help:      "Declared request body size.",
		Buckets:   sizeBuckets,
	}, sizeLabels)

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "Bytes written in the response body.",
		Buckets:   sizeBuckets,
	}, sizeLabels)

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Requests currently inside the handler chain.",
	})
)

// Stories.
var (
	StoriesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stories_created_total",
		Help: "Stories inserted through the API or a scrape.",
	})

	StoriesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stories_deleted_total",
		Help: "Stories removed together with their votes.",
	})

	// direction: up | down
	StoryVotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "story_votes_total",
		Help: "Votes applied to stories.",
	}, []string{"direction"})
)

// Scrapes.
var (
	// status: success | rejected | unreachable | failed
	ScrapeRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrape_runs_total",
		Help: "POST /scrape runs by outcome.",
	}, []string{"status"})

	ScrapeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scrape_duration_seconds",
		Help:    "Wall time of a scrape run including probe and inserts.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})

	// result: inserted | skipped | failed
	ScrapeHeadlinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrape_headlines_total",
		Help: "Parsed headlines by what happened to them.",
	}, []string{"result"})
)

// Postgres store.
var (
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Story repository statement latency by operation.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"operation"})

	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "db",
		Name:      "connections_active",
		Help:      "Pool connections in use, sampled by /health.",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "db",
		Name:      "connections_idle",
		Help:      "Idle pool connections, sampled by /health.",
	})
)

// RecordHTTPRequest observes one finished request. A non-positive requestSize
// (unknown Content-Length) is not observed.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}
