package story

import (
	"context"
	"fmt"
	"strings"
	"time"

	"social-news/internal/domain/entity"
	"social-news/internal/observability/metrics"
	"social-news/internal/repository"
)

// ListInput carries the raw listing parameters from the query string.
type ListInput struct {
	Search string
	Sort   string
	Order  string
}

// CreateInput represents the input parameters for creating a story.
type CreateInput struct {
	URL   string
	Title string
}

// PatchInput represents a content patch. Nil or empty fields are left unchanged.
type PatchInput struct {
	ID    int64
	URL   *string
	Title *string
}

// Service provides story management use cases.
type Service struct {
	Repo repository.StoryRepository
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns the stories matching in. Sort and order are validated before
// the store is touched; an empty result is ErrNoStories.
func (s *Service) List(ctx context.Context, in ListInput) ([]*entity.Story, error) {
	field, err := entity.ParseSortField(in.Sort)
	if err != nil {
		return nil, err
	}
	desc, err := entity.ParseOrder(in.Order)
	if err != nil {
		return nil, err
	}

	stories, err := s.Repo.List(ctx, repository.StoryQuery{
		Search:     strings.TrimSpace(in.Search),
		Sort:       field,
		Descending: desc,
	})
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	if len(stories) == 0 {
		return nil, ErrNoStories
	}
	return stories, nil
}

// Create stores a new story with a zero score.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Story, error) {
	url := strings.TrimSpace(in.URL)
	title := strings.TrimSpace(in.Title)
	if url == "" || title == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.Repo.ExistsByURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("check story url: %w", err)
	}
	if exists {
		return nil, ErrDuplicateStory
	}

	now := s.now()
	story := &entity.Story{
		Title:     title,
		URL:       url,
		Score:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	n, err := s.Repo.Create(ctx, story)
	if err != nil {
		return nil, fmt.Errorf("create story: %w", err)
	}
	if n == 0 {
		// 同時リクエストで URL が先に登録された
		return nil, ErrInsertFailed
	}

	metrics.RecordStoryCreated()
	return story, nil
}

// Patch updates the URL and/or title of a story and bumps updated_at.
func (s *Service) Patch(ctx context.Context, in PatchInput) error {
	patch := repository.StoryPatch{
		URL:   nonEmpty(in.URL),
		Title: nonEmpty(in.Title),
	}
	if patch.Empty() {
		return ErrEmptyPatch
	}

	n, err := s.Repo.Patch(ctx, in.ID, patch, s.now())
	if err != nil {
		return fmt.Errorf("patch story: %w", err)
	}
	if n == 0 {
		return ErrUpdateFailed
	}
	return nil
}

// Vote records a vote and moves the score by the direction's delta.
// Unknown stories are rejected without writing anything.
func (s *Service) Vote(ctx context.Context, id int64, dir entity.Direction) error {
	if !dir.Valid() {
		return &entity.ValidationError{Field: "direction", Message: "must be up or down"}
	}

	story, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get story: %w", err)
	}
	if story == nil {
		return ErrIncorrectID
	}

	n, err := s.Repo.AddVote(ctx, id, dir)
	if err != nil {
		return fmt.Errorf("add vote: %w", err)
	}
	if n == 0 {
		return ErrVoteFailed
	}

	metrics.RecordVote(dir.String())
	return nil
}

// Delete removes a story and its votes.
func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if n == 0 {
		return ErrDeleteFailed
	}

	metrics.RecordStoryDeleted()
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
