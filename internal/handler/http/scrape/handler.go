// Package scrape exposes the headline scraper over HTTP.
package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"social-news/internal/domain/entity"
	"social-news/internal/handler/http/respond"
	scrapeUC "social-news/internal/usecase/scrape"
)

// Scraper is the use case behind POST /scrape.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*scrapeUC.Result, error)
}

type Handler struct {
	Svc Scraper
	// Limiter throttles scrape runs across all clients. Nil disables throttling.
	Limiter *rate.Limiter
}

type request struct {
	URL string `json:"url" example:"https://www.bbc.co.uk/news"`
}

// Response reports what a scrape run did.
type Response struct {
	Message string `json:"message" example:"successful"`
	scrapeUC.Result
}

// Register registers the scrape handler with the given mux.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("POST /scrape", h)
}

// ServeHTTP ニュースページのスクレイピング
// @Summary      ニュース見出しの取り込み
// @Description  許可されたニュースページから見出しを取得し、未登録のものをストーリーとして登録します
// @Tags         scrape
// @Accept       json
// @Produce      json
// @Param        page body request true "スクレイピング対象 URL"
// @Success      200 {object} Response
// @Failure      400 {object} respond.ErrorBody "Request must contain URL / API not connected to internet."
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Router       /scrape [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil {
		res := h.Limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			w.Header().Set("Retry-After", retryAfter(delay))
			respond.Error(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = &entity.ValidationError{Field: "body", Message: "request body must be a JSON object"}
		}
		respond.SafeError(w, r, err, nil)
		return
	}

	res, err := h.Svc.Scrape(r.Context(), req.URL)
	if err != nil {
		respond.SafeError(w, r, err, nil)
		return
	}
	respond.JSON(w, http.StatusOK, Response{Message: "successful", Result: *res})
}

func retryAfter(d time.Duration) string {
	return strconv.Itoa(int(math.Ceil(d.Seconds())))
}
