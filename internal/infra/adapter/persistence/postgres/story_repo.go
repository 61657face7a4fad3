package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"social-news/internal/domain/entity"
	"social-news/internal/observability/metrics"
	"social-news/internal/repository"
)

type StoryRepo struct {
	db           *sql.DB
	queryBuilder *StoryQueryBuilder
}

func NewStoryRepo(db *sql.DB) repository.StoryRepository {
	return &StoryRepo{
		db:           db,
		queryBuilder: NewStoryQueryBuilder(),
	}
}

func (repo *StoryRepo) List(ctx context.Context, q repository.StoryQuery) ([]*entity.Story, error) {
	defer observe("list", time.Now())

	query, args, err := repo.queryBuilder.BuildListQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stories := make([]*entity.Story, 0, 64)
	for rows.Next() {
		var story entity.Story
		if err := rows.Scan(&story.ID, &story.Title, &story.URL,
			&story.Score, &story.CreatedAt, &story.UpdatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		stories = append(stories, &story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return stories, nil
}

func (repo *StoryRepo) Get(ctx context.Context, id int64) (*entity.Story, error) {
	defer observe("get", time.Now())

	const query = `
SELECT id, title, url, score, created_at, updated_at
FROM stories
WHERE id = $1
LIMIT 1`
	var story entity.Story
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&story.ID, &story.Title, &story.URL,
			&story.Score, &story.CreatedAt, &story.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &story, nil
}

func (repo *StoryRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM stories WHERE url = $1)`
	var existsFlag bool
	err := repo.db.QueryRowContext(ctx, query, url).Scan(&existsFlag)
	if err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return existsFlag, nil
}

func (repo *StoryRepo) Create(ctx context.Context, story *entity.Story) (int64, error) {
	defer observe("create", time.Now())

	const query = `
INSERT INTO stories
       (title, url, score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (url) DO NOTHING
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		story.Title, story.URL, story.Score, story.CreatedAt, story.UpdatedAt,
	).Scan(&story.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("Create: %w", err)
	}
	return 1, nil
}

func (repo *StoryRepo) Patch(ctx context.Context, id int64, patch repository.StoryPatch, updatedAt time.Time) (int64, error) {
	defer observe("patch", time.Now())

	// NULL parameters keep the stored value
	const query = `
UPDATE stories SET
       url        = COALESCE($1, url),
       title      = COALESCE($2, title),
       updated_at = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query,
		nullString(patch.URL), nullString(patch.Title), updatedAt, id)
	if err != nil {
		return 0, fmt.Errorf("Patch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Patch: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *StoryRepo) AddVote(ctx context.Context, id int64, dir entity.Direction) (int64, error) {
	defer observe("vote", time.Now())

	var affected int64
	err := repo.inTx(ctx, func(tx *sql.Tx) error {
		const insertVote = `INSERT INTO votes (story_id, direction) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, insertVote, id, dir.Code()); err != nil {
			return fmt.Errorf("insert vote: %w", err)
		}

		const updateScore = `UPDATE stories SET score = score + $1 WHERE id = $2`
		res, err := tx.ExecContext(ctx, updateScore, dir.Delta(), id)
		if err != nil {
			return fmt.Errorf("update score: %w", err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("AddVote: %w", err)
	}
	return affected, nil
}

func (repo *StoryRepo) Delete(ctx context.Context, id int64) (int64, error) {
	defer observe("delete", time.Now())

	var affected int64
	err := repo.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE story_id = $1`, id); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}

		var deletedID int64
		err := tx.QueryRowContext(ctx, `DELETE FROM stories WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("delete story: %w", err)
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	return affected, nil
}

func (repo *StoryRepo) Ping(ctx context.Context) error {
	return repo.db.PingContext(ctx)
}

// inTx runs fn in a transaction, committing on success and rolling back otherwise.
func (repo *StoryRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}
