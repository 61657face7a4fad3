package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"social-news/internal/handler/http/middleware"
	"social-news/internal/handler/http/requestid"
	hscrape "social-news/internal/handler/http/scrape"
	hstory "social-news/internal/handler/http/story"
	"social-news/internal/observability/tracing"
	storyUC "social-news/internal/usecase/story"
)

const (
	defaultMaxBodyBytes = 1 << 20
	maxPathLength       = 2048
)

// RouterConfig wires the use cases and probes into the HTTP surface.
type RouterConfig struct {
	Logger  *slog.Logger
	Stories *storyUC.Service
	Scrape  hscrape.Handler
	Health  *HealthHandler
	Ready   *ReadyHandler
	Pages   *Pages
	CORS    middleware.CORSConfig
	// MaxBodyBytes defaults to 1MB.
	MaxBodyBytes int64
}

// NewRouter registers every route and wraps the mux in the middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pages := cfg.Pages
	if pages == nil {
		pages = NewPages("")
	}
	health, ready := cfg.Health, cfg.Ready
	if health == nil {
		health = &HealthHandler{}
	}
	if ready == nil {
		ready = &ReadyHandler{}
	}

	mux := http.NewServeMux()

	// ブラウザ向けページ
	mux.Handle("GET /{$}", pages.File("index.html"))
	mux.Handle("GET /add", pages.File("addstory/index.html"))
	mux.Handle("GET /scrape", pages.File("scrape/index.html"))

	hstory.Register(mux, cfg.Stories)
	hscrape.Register(mux, cfg.Scrape)

	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", ready)
	mux.Handle("GET /live", &LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", pages.NotFound)

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// Order, outermost first:
	// CORS → Request ID → Recovery → Tracing → Logging → Path/Body limits → Metrics
	var h http.Handler = mux
	h = MetricsMiddleware(h)
	h = LimitRequestBody(maxBody)(h)
	h = LimitPath(maxPathLength)(h)
	h = Logging(logger)(h)
	h = tracing.Middleware(h)
	h = Recover(logger)(h)
	h = requestid.Middleware(h)
	h = middleware.CORS(cfg.CORS, logger)(h)
	return h
}
