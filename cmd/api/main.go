package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"social-news/internal/config"
	"social-news/internal/infra/scraper"
	"social-news/internal/infra/store"
	"social-news/internal/observability/logging"
	"social-news/internal/observability/tracing"

	scrapeUC "social-news/internal/usecase/scrape"
	storyUC "social-news/internal/usecase/story"

	hhttp "social-news/internal/handler/http"
	"social-news/internal/handler/http/middleware"
	hscrape "social-news/internal/handler/http/scrape"

	_ "social-news/docs" // swagger docs
)

// @title           Social News API
// @version         1.0
// @description     ニュースストーリーの登録・投票・一覧と、ニュースサイト見出しの取り込みを提供する REST API

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

const shutdownTimeout = 5 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.Any("error", err))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to open story store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close story store", slog.Any("error", err))
		}
	}()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    "social-news",
		ServiceVersion: cfg.Version,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	handler, err := setupServer(logger, cfg, st)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	if err := runServer(ctx, logger, cfg, handler); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger installs the JSON logger as the slog default.
func initLogger(cfg config.Config) *slog.Logger {
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}

// setupServer wires use cases, probes and the router.
func setupServer(logger *slog.Logger, cfg config.Config, st *store.Store) (http.Handler, error) {
	storySvc := &storyUC.Service{Repo: st.Repo}

	news := scraper.NewNewsScraper(&http.Client{}, scraper.Config{
		Timeout:  cfg.Scrape.Timeout,
		ProbeURL: cfg.Scrape.ProbeURL,
	})
	scrapeSvc := &scrapeUC.Service{
		Fetcher:       news,
		Stories:       storySvc,
		URLs:          st.Repo,
		AllowedPrefix: cfg.Scrape.AllowedPrefix,
	}

	origins, err := middleware.ParseOrigins(strings.Join(cfg.CORSAllowedOrigins, ","))
	if err != nil {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS: %w", err)
	}
	corsCfg := middleware.DefaultCORSConfig(origins)
	if len(origins) > 0 {
		logger.Info("CORS enabled", slog.Any("allowed_origins", corsCfg.AllowedOrigins))
	}

	logger.Info("scrape rate limit",
		slog.Float64("per_second", cfg.Scrape.RateLimit),
		slog.Int("burst", cfg.Scrape.RateBurst))

	return hhttp.NewRouter(hhttp.RouterConfig{
		Logger:  logger,
		Stories: storySvc,
		Scrape: hscrape.Handler{
			Svc:     scrapeSvc,
			Limiter: rate.NewLimiter(rate.Limit(cfg.Scrape.RateLimit), cfg.Scrape.RateBurst),
		},
		Health: &hhttp.HealthHandler{
			Store:   st.Repo,
			Version: cfg.Version,
			Stats:   st.Stats,
			Breaker: news,
		},
		Ready: &hhttp.ReadyHandler{Store: st.Repo},
		Pages: hhttp.NewPages(cfg.StaticDir),
		CORS:  corsCfg,
	}), nil
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version),
			slog.String("store", cfg.Store.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
