// Package scraper fetches news index pages and extracts headline links from them.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"social-news/internal/domain/entity"
	"social-news/internal/resilience/circuitbreaker"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultTimeout bounds both the connectivity probe and the page fetch.
	DefaultTimeout   = 10 * time.Second
	DefaultProbeURL  = "https://www.google.com/"
	DefaultUserAgent = "SocialNewsBot/1.0"

	articleIDLength = 8
)

// Headline is one candidate story found on a news page.
type Headline struct {
	URL   string
	Title string
}

// Config configures a NewsScraper. Zero fields take the package defaults.
type Config struct {
	Timeout   time.Duration
	ProbeURL  string
	UserAgent string
}

// NewsScraper probes connectivity and fetches news pages.
// Requests are never retried; page fetches go through a circuit breaker.
type NewsScraper struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	timeout        time.Duration
	probeURL       string
	userAgent      string
}

// NewNewsScraper creates a NewsScraper using client for all requests.
func NewNewsScraper(client *http.Client, cfg Config) *NewsScraper {
	if client == nil {
		client = &http.Client{}
	}
	s := &NewsScraper{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsFetchConfig()),
		timeout:        cfg.Timeout,
		probeURL:       cfg.ProbeURL,
		userAgent:      cfg.UserAgent,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.probeURL == "" {
		s.probeURL = DefaultProbeURL
	}
	if s.userAgent == "" {
		s.userAgent = DefaultUserAgent
	}
	return s
}

// BreakerState reports the page-fetch circuit state: closed, half-open or open.
func (s *NewsScraper) BreakerState() string {
	return s.circuitBreaker.State().String()
}

// Probe checks that the outside world is reachable.
// HEAD is refused by some hosts, so a plain GET is issued and its body discarded.
func (s *NewsScraper) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.probeURL, nil)
	if err != nil {
		return networkError("probe", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return networkError("probe", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode >= http.StatusBadRequest {
		return networkError("probe", fmt.Errorf("unexpected status: %s", resp.Status))
	}
	return nil
}

// Fetch downloads the page at pageURL and returns its markup.
// Bodies larger than 10MB are truncated.
func (s *NewsScraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	html, err := circuitbreaker.Do(s.circuitBreaker, func() (string, error) {
		return s.doFetch(ctx, pageURL)
	})
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		slog.Warn("news fetch circuit breaker open, request rejected",
			slog.String("url", pageURL),
			slog.String("state", s.circuitBreaker.State().String()))
		return "", networkError("fetch", err)
	}
	return html, err
}

func (s *NewsScraper) doFetch(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", networkError("fetch", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", networkError("fetch", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", networkError("fetch", fmt.Errorf("unexpected status: %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", networkError("fetch", err)
	}
	return string(body), nil
}

func networkError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, entity.ErrNetwork, err)
}

// Parse yields the headlines linked from markup, resolved against baseURL.
// Every range over the sequence parses markup again.
func Parse(baseURL, markup string) iter.Seq[Headline] {
	return func(yield func(Headline) bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
		if err != nil {
			slog.Debug("parse news markup", slog.Any("error", err))
			return
		}

		seenHrefs := make(map[string]struct{})
		seenPairs := make(map[Headline]struct{})
		doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if !IsArticleLink(href) {
				return true
			}
			if _, dup := seenHrefs[href]; dup {
				return true
			}

			// 前後の空白を落としてから Video 判定する
			title := strings.TrimSpace(a.Text())
			if title == "" || IsVideoTitle(title) {
				return true
			}
			h := Headline{URL: baseURL + href, Title: title}
			if _, dup := seenPairs[h]; dup {
				return true
			}

			seenHrefs[href] = struct{}{}
			seenPairs[h] = struct{}{}
			return yield(h)
		})
	}
}

// ParseAll collects Parse into a slice.
func ParseAll(baseURL, markup string) []Headline {
	var out []Headline
	for h := range Parse(baseURL, markup) {
		out = append(out, h)
	}
	return out
}

// IsArticleLink reports whether href looks like a relative link to a news article.
func IsArticleLink(href string) bool {
	return href != "" && HasNewsSegment(href) && HasArticleIDSuffix(href) && !IsAbsoluteLink(href)
}

// HasNewsSegment reports whether href contains the "news/" path segment.
func HasNewsSegment(href string) bool {
	return strings.Contains(href, "news/")
}

// HasArticleIDSuffix reports whether href ends in an 8 digit article ID.
func HasArticleIDSuffix(href string) bool {
	if len(href) < articleIDLength {
		return false
	}
	for _, c := range href[len(href)-articleIDLength:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsAbsoluteLink reports whether href points at a full URL (http or https).
func IsAbsoluteLink(href string) bool {
	return strings.HasPrefix(href, "http")
}

// IsVideoTitle reports whether the anchor text marks a video item.
func IsVideoTitle(text string) bool {
	return strings.HasPrefix(text, "Video")
}
