// Package scrape turns a news index page into new stories.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"social-news/internal/domain/entity"
	"social-news/internal/infra/scraper"
	"social-news/internal/observability/logging"
	"social-news/internal/observability/metrics"
	"social-news/internal/observability/tracing"
	storyUC "social-news/internal/usecase/story"
)

// DefaultAllowedPrefix is the only news site the scraper knows how to read.
const DefaultAllowedPrefix = "https://www.bbc.co.uk/news"

var (
	ErrMissingURL  = entity.NewUserError(entity.ErrInvalidArgument, "Request must contain URL")
	ErrOffline     = entity.NewUserError(entity.ErrNetwork, "API not connected to internet.")
	ErrFetchFailed = entity.NewUserError(entity.ErrNetwork, "Could not fetch news page.")
)

// PageFetcher is implemented by scraper.NewsScraper.
type PageFetcher interface {
	Probe(ctx context.Context) error
	Fetch(ctx context.Context, url string) (string, error)
}

// StoryCreator is implemented by story.Service.
type StoryCreator interface {
	Create(ctx context.Context, in storyUC.CreateInput) (*entity.Story, error)
}

// URLChecker reports whether a story with the URL is already stored.
type URLChecker interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
}

// Result summarizes one scrape run.
type Result struct {
	Found    int `json:"found"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Service runs synchronous, single pass scrapes.
type Service struct {
	Fetcher PageFetcher
	Stories StoryCreator
	URLs    URLChecker
	// AllowedPrefix defaults to DefaultAllowedPrefix.
	AllowedPrefix string
}

func (s *Service) allowedPrefix() string {
	if s.AllowedPrefix == "" {
		return DefaultAllowedPrefix
	}
	return s.AllowedPrefix
}

// Scrape validates url, checks connectivity, then stores every new headline on the page.
// Failures on individual headlines are logged and counted.
func (s *Service) Scrape(ctx context.Context, url string) (*Result, error) {
	ctx, span := tracing.Tracer().Start(ctx, "scrape")
	defer span.End()
	span.SetAttributes(attribute.String("scrape.url", url))

	start := time.Now()
	logger := logging.WithRequestID(ctx, slog.Default())

	res, status, err := s.run(ctx, logger, strings.TrimSpace(url))
	metrics.RecordScrape(status, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		return nil, err
	}

	metrics.RecordHeadlines(metrics.HeadlineInserted, res.Inserted)
	metrics.RecordHeadlines(metrics.HeadlineSkipped, res.Skipped)
	metrics.RecordHeadlines(metrics.HeadlineFailed, res.Failed)
	span.SetAttributes(
		attribute.Int("scrape.found", res.Found),
		attribute.Int("scrape.inserted", res.Inserted),
	)

	logger.Info("scrape finished",
		slog.String("url", url),
		slog.Int("found", res.Found),
		slog.Int("inserted", res.Inserted),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", time.Since(start)))
	return res, nil
}

func (s *Service) run(ctx context.Context, logger *slog.Logger, url string) (*Result, string, error) {
	if url == "" {
		return nil, metrics.ScrapeRejected, ErrMissingURL
	}
	if err := entity.ValidateScrapeURL(url, s.allowedPrefix()); err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			return nil, metrics.ScrapeRejected, entity.NewUserError(entity.ErrInvalidArgument, ve.Message)
		}
		return nil, metrics.ScrapeRejected, err
	}

	if err := s.Fetcher.Probe(ctx); err != nil {
		logger.Warn("connectivity probe failed", slog.Any("error", err))
		return nil, metrics.ScrapeUnreachable, ErrOffline
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Warn("news page fetch failed", slog.String("url", url), slog.Any("error", err))
		return nil, metrics.ScrapeFailed, ErrFetchFailed
	}

	res := &Result{}
	for h := range scraper.Parse(url, html) {
		if err := ctx.Err(); err != nil {
			return nil, metrics.ScrapeFailed, fmt.Errorf("scrape: %w", err)
		}
		res.Found++

		exists, err := s.URLs.ExistsByURL(ctx, h.URL)
		if err != nil {
			logger.Warn("check headline url", slog.String("url", h.URL), slog.Any("error", err))
			res.Failed++
			continue
		}
		if exists {
			res.Skipped++
			continue
		}

		_, err = s.Stories.Create(ctx, storyUC.CreateInput{URL: h.URL, Title: h.Title})
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, storyUC.ErrDuplicateStory):
			res.Skipped++
		default:
			logger.Warn("insert headline",
				slog.String("url", h.URL),
				slog.String("title", h.Title),
				slog.Any("error", err))
			res.Failed++
		}
	}
	return res, metrics.ScrapeSuccess, nil
}
