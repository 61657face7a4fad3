// Package repository declares the storage contracts used by the use case layer.
package repository

import (
	"context"
	"time"

	"social-news/internal/domain/entity"
)

// StoryQuery describes a story listing.
// An empty Search matches every story; Sort must already be whitelisted.
type StoryQuery struct {
	Search     string
	Sort       entity.SortField
	Descending bool
}

// StoryPatch holds the content fields to overwrite. Nil fields are left unchanged.
type StoryPatch struct {
	URL   *string
	Title *string
}

// Empty reports whether the patch would change nothing.
func (p StoryPatch) Empty() bool {
	return p.URL == nil && p.Title == nil
}

// StoryRepository persists stories and their votes.
// Mutations return the number of affected story rows so that callers can
// distinguish a missing row from a storage failure.
type StoryRepository interface {
	List(ctx context.Context, q StoryQuery) ([]*entity.Story, error)
	// Get returns (nil, nil) if the story does not exist.
	Get(ctx context.Context, id int64) (*entity.Story, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
	// Create inserts the story and assigns its ID.
	Create(ctx context.Context, story *entity.Story) (int64, error)
	Patch(ctx context.Context, id int64, patch StoryPatch, updatedAt time.Time) (int64, error)
	// AddVote records a vote and applies its delta to the story score.
	AddVote(ctx context.Context, id int64, dir entity.Direction) (int64, error)
	// Delete removes the story's votes and then the story itself.
	Delete(ctx context.Context, id int64) (int64, error)
	Ping(ctx context.Context) error
}
