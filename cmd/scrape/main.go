// Package main fetches a news page once and prints or stores its headlines.
//
//	social-news-scrape [--url URL] [--insert] [--output text|json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"social-news/internal/config"
	"social-news/internal/domain/entity"
	"social-news/internal/infra/scraper"
	"social-news/internal/infra/store"
	"social-news/internal/observability/logging"
	scrapeUC "social-news/internal/usecase/scrape"
	storyUC "social-news/internal/usecase/story"
)

type options struct {
	url    string
	insert bool
	output string
}

// fetcherFunc builds the page fetcher from the loaded configuration.
type fetcherFunc func(cfg config.Config) scrapeUC.PageFetcher

func newsFetcher(cfg config.Config) scrapeUC.PageFetcher {
	return scraper.NewNewsScraper(&http.Client{}, scraper.Config{
		Timeout:  cfg.Scrape.Timeout,
		ProbeURL: cfg.Scrape.ProbeURL,
	})
}

func newRootCmd(newFetcher fetcherFunc) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "social-news-scrape",
		Short: "Scrape headlines from a news page",
		Long: `Fetches a news index page once and lists the article headlines on it.

With --insert the headlines not yet stored are added as stories, exactly as
POST /scrape does. Store and scrape settings come from the same environment
variables (and CONFIG_FILE) as the API server.

Example usage:
  social-news-scrape                          # list BBC News headlines
  social-news-scrape --output json            # the same as JSON
  STORE_MODE=file social-news-scrape --insert # store new headlines in stories.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != "text" && opts.output != "json" {
				return fmt.Errorf("unknown output format %q (text or json)", opts.output)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// stdout は結果の出力に使う
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), cfg.LogLevel))

			fetcher := newFetcher(cfg)
			if opts.insert {
				return insert(cmd.Context(), cfg, fetcher, opts, cmd.OutOrStdout())
			}
			return list(cmd.Context(), cfg, fetcher, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", scrapeUC.DefaultAllowedPrefix, "news page to scrape")
	cmd.Flags().BoolVar(&opts.insert, "insert", false, "store new headlines instead of printing them")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	return cmd
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newsFetcher).ExecuteContext(ctx); err != nil {
		slog.Error("scrape failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %s\n", userMessage(err))
		os.Exit(1)
	}
}

// list prints the headlines found on the page without touching the store.
func list(ctx context.Context, cfg config.Config, fetcher scrapeUC.PageFetcher, opts options, w io.Writer) error {
	if err := entity.ValidateScrapeURL(opts.url, cfg.Scrape.AllowedPrefix); err != nil {
		return err
	}
	html, err := fetcher.Fetch(ctx, opts.url)
	if err != nil {
		return err
	}

	headlines := scraper.ParseAll(opts.url, html)
	if opts.output == "json" {
		type item struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		}
		out := make([]item, 0, len(headlines))
		for _, h := range headlines {
			out = append(out, item{Title: h.Title, URL: h.URL})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, h := range headlines {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", h.Title, h.URL); err != nil {
			return err
		}
	}
	return nil
}

// insert runs the same scrape POST /scrape does against the configured store.
func insert(ctx context.Context, cfg config.Config, fetcher scrapeUC.PageFetcher, opts options, w io.Writer) error {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	svc := &scrapeUC.Service{
		Fetcher:       fetcher,
		Stories:       &storyUC.Service{Repo: st.Repo},
		URLs:          st.Repo,
		AllowedPrefix: cfg.Scrape.AllowedPrefix,
	}
	res, err := svc.Scrape(ctx, opts.url)
	if err != nil {
		return err
	}

	if opts.output == "json" {
		return json.NewEncoder(w).Encode(res)
	}
	_, err = fmt.Fprintf(w, "found=%d inserted=%d skipped=%d failed=%d\n",
		res.Found, res.Inserted, res.Skipped, res.Failed)
	return err
}

func userMessage(err error) string {
	var ue *entity.UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
