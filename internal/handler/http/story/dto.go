// Package story provides HTTP handlers for the story endpoints: listing,
// creation, votes, content patches and deletion.
package story

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"social-news/internal/domain/entity"
)

// DTO represents the JSON structure for story data transfer.
type DTO struct {
	ID        int64     `json:"id" example:"1"`
	Title     string    `json:"title" example:"Budget 2024: Pensions triple lock stays"`
	URL       string    `json:"url" example:"https://www.bbc.co.uk/news/uk-politics-68512345"`
	Score     int       `json:"score" example:"3"`
	CreatedAt time.Time `json:"created_at" example:"2024-02-20T15:16:23Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-02-20T15:16:23Z"`
}

func toDTO(s *entity.Story) DTO {
	return DTO{
		ID:        s.ID,
		Title:     s.Title,
		URL:       s.URL,
		Score:     s.Score,
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}

// decodeBody reads a JSON object into dst. An empty body leaves dst untouched
// so the caller's own "missing field" message applies.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &tooLarge):
		return err
	default:
		return &entity.ValidationError{Field: "body", Message: "request body must be a JSON object"}
	}
}
