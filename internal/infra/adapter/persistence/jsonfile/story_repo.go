// Package jsonfile provides a flat-file implementation of the story repository.
// Stories live in a single JSON array; every mutation rewrites the file.
// This mode keeps no vote records, only the running score.
package jsonfile

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"social-news/internal/domain/entity"
	"social-news/internal/repository"
)

// record is the on-disk layout of a story. Timestamps are written as RFC 3339
// with nanoseconds; HTTP dates written by older files are still read.
type record struct {
	CreatedAt string `json:"created_at"`
	ID        int64  `json:"id"`
	Score     int    `json:"score"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at"`
	URL       string `json:"url"`
}

func toRecord(s *entity.Story) record {
	return record{
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        s.ID,
		Score:     s.Score,
		Title:     s.Title,
		UpdatedAt: s.UpdatedAt.UTC().Format(time.RFC3339Nano),
		URL:       s.URL,
	}
}

func (r record) toStory() (*entity.Story, error) {
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("story %d: created_at: %w", r.ID, err)
	}
	updated, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("story %d: updated_at: %w", r.ID, err)
	}
	return &entity.Story{
		ID:        r.ID,
		Title:     r.Title,
		URL:       r.URL,
		Score:     r.Score,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func parseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	return http.ParseTime(v)
}

// StoryRepo implements the StoryRepository interface on top of a JSON file.
type StoryRepo struct {
	path string
	mu   sync.Mutex
}

var _ repository.StoryRepository = (*StoryRepo)(nil)

// NewStoryRepo opens the store at path, creating an empty array if the file is missing.
func NewStoryRepo(path string) (*StoryRepo, error) {
	repo := &StoryRepo{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := repo.save(nil); err != nil {
			return nil, fmt.Errorf("NewStoryRepo: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("NewStoryRepo: %w", err)
	}
	return repo, nil
}

func (repo *StoryRepo) List(_ context.Context, q repository.StoryQuery) ([]*entity.Story, error) {
	less, err := comparator(q.Sort)
	if err != nil {
		return nil, err
	}

	repo.mu.Lock()
	stories, err := repo.load()
	repo.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		stories = slices.DeleteFunc(stories, func(s *entity.Story) bool {
			return !strings.Contains(strings.ToLower(s.Title), needle)
		})
	}

	slices.SortStableFunc(stories, func(a, b *entity.Story) int {
		c := less(a, b)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if q.Descending {
			return -c
		}
		return c
	})
	return stories, nil
}

// comparator returns the ordering for a whitelisted field.
func comparator(field entity.SortField) (func(a, b *entity.Story) int, error) {
	switch field {
	case "", entity.SortByCreatedAt:
		return func(a, b *entity.Story) int { return a.CreatedAt.Compare(b.CreatedAt) }, nil
	case entity.SortByUpdatedAt:
		return func(a, b *entity.Story) int { return a.UpdatedAt.Compare(b.UpdatedAt) }, nil
	case entity.SortByTitle:
		return func(a, b *entity.Story) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}, nil
	case entity.SortByURL:
		return func(a, b *entity.Story) int { return strings.Compare(a.URL, b.URL) }, nil
	case entity.SortByScore:
		return func(a, b *entity.Story) int { return cmp.Compare(a.Score, b.Score) }, nil
	case entity.SortByID:
		return func(a, b *entity.Story) int { return cmp.Compare(a.ID, b.ID) }, nil
	default:
		return nil, &entity.ValidationError{Field: "sort", Message: fmt.Sprintf("invalid sort key %q", string(field))}
	}
}

func (repo *StoryRepo) Get(_ context.Context, id int64) (*entity.Story, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stories, err := repo.load()
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if i := indexOf(stories, id); i >= 0 {
		return stories[i], nil
	}
	return nil, nil
}

func (repo *StoryRepo) ExistsByURL(_ context.Context, url string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stories, err := repo.load()
	if err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return slices.ContainsFunc(stories, func(s *entity.Story) bool { return s.URL == url }), nil
}

func (repo *StoryRepo) Create(_ context.Context, story *entity.Story) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stories, err := repo.load()
	if err != nil {
		return 0, fmt.Errorf("Create: %w", err)
	}
	if slices.ContainsFunc(stories, func(s *entity.Story) bool { return s.URL == story.URL }) {
		return 0, nil
	}

	var maxID int64
	for _, s := range stories {
		maxID = max(maxID, s.ID)
	}
	story.ID = maxID + 1

	stored := *story
	if err := repo.save(append(stories, &stored)); err != nil {
		story.ID = 0
		return 0, fmt.Errorf("Create: %w", err)
	}
	return 1, nil
}

func (repo *StoryRepo) Patch(_ context.Context, id int64, patch repository.StoryPatch, updatedAt time.Time) (int64, error) {
	return repo.mutate("Patch", id, func(s *entity.Story) {
		if patch.URL != nil {
			s.URL = *patch.URL
		}
		if patch.Title != nil {
			s.Title = *patch.Title
		}
		s.UpdatedAt = updatedAt
	})
}

func (repo *StoryRepo) AddVote(_ context.Context, id int64, dir entity.Direction) (int64, error) {
	return repo.mutate("AddVote", id, func(s *entity.Story) {
		s.Score += dir.Delta()
	})
}

func (repo *StoryRepo) Delete(_ context.Context, id int64) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stories, err := repo.load()
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	i := indexOf(stories, id)
	if i < 0 {
		return 0, nil
	}
	if err := repo.save(slices.Delete(stories, i, i+1)); err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	return 1, nil
}

func (repo *StoryRepo) Ping(_ context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, err := os.Stat(repo.path)
	return err
}

// mutate applies fn to the story with id and persists the result.
func (repo *StoryRepo) mutate(op string, id int64, fn func(s *entity.Story)) (int64, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stories, err := repo.load()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	i := indexOf(stories, id)
	if i < 0 {
		return 0, nil
	}
	fn(stories[i])
	if err := repo.save(stories); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return 1, nil
}

func indexOf(stories []*entity.Story, id int64) int {
	return slices.IndexFunc(stories, func(s *entity.Story) bool { return s.ID == id })
}

// load reads the file. Callers must hold repo.mu.
func (repo *StoryRepo) load() ([]*entity.Story, error) {
	data, err := os.ReadFile(repo.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", repo.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", repo.path, err)
	}

	stories := make([]*entity.Story, 0, len(records))
	for _, r := range records {
		s, err := r.toStory()
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, nil
}

// save atomically replaces the file. Callers must hold repo.mu.
func (repo *StoryRepo) save(stories []*entity.Story) error {
	records := make([]record, 0, len(stories))
	for _, s := range stories {
		records = append(records, toRecord(s))
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(repo.path), ".stories-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), repo.path); err != nil {
		return fmt.Errorf("replace %s: %w", repo.path, err)
	}
	return nil
}
