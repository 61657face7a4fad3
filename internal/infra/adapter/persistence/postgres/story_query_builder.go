// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"social-news/internal/domain/entity"
	"social-news/internal/repository"
)

// storyColumns is the select list shared by every story read.
const storyColumns = "id, title, url, score, created_at, updated_at"

// orderExpressions maps whitelisted sort fields to ORDER BY expressions.
// Titles compare case-insensitively; every other column uses its natural order.
var orderExpressions = map[entity.SortField]string{
	entity.SortByID:        "id",
	entity.SortByTitle:     "LOWER(title)",
	entity.SortByURL:       "url",
	entity.SortByScore:     "score",
	entity.SortByCreatedAt: "created_at",
	entity.SortByUpdatedAt: "updated_at",
}

var ilikeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// StoryQueryBuilder composes the filtered and ordered story listing query.
// Caller input only ever reaches the query as a bind parameter.
type StoryQueryBuilder struct{}

// NewStoryQueryBuilder creates a new query builder instance.
func NewStoryQueryBuilder() *StoryQueryBuilder {
	return &StoryQueryBuilder{}
}

// BuildListQuery returns the SELECT statement and its arguments for q.
// An unknown sort field is rejected with entity.ErrInvalidArgument.
func (qb *StoryQueryBuilder) BuildListQuery(q repository.StoryQuery) (string, []any, error) {
	where, args := qb.BuildWhereClause(q.Search)
	orderBy, err := qb.BuildOrderClause(q.Sort, q.Descending)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(storyColumns)
	sb.WriteString("\nFROM stories")
	if where != "" {
		sb.WriteString("\n")
		sb.WriteString(where)
	}
	sb.WriteString("\n")
	sb.WriteString(orderBy)
	return sb.String(), args, nil
}

// BuildWhereClause filters by a case-insensitive title substring.
// Returns an empty clause when search is empty.
func (qb *StoryQueryBuilder) BuildWhereClause(search string) (clause string, args []any) {
	if search == "" {
		return "", nil
	}
	return `WHERE title ILIKE $1 ESCAPE '\'`, []any{"%" + EscapeILIKE(search) + "%"}
}

// BuildOrderClause returns the ORDER BY clause for a whitelisted field.
// The id tiebreaker keeps ordering stable between equal keys.
func (qb *StoryQueryBuilder) BuildOrderClause(field entity.SortField, descending bool) (string, error) {
	if field == "" {
		field = entity.DefaultSortField
	}
	expr, ok := orderExpressions[field]
	if !ok {
		return "", &entity.ValidationError{Field: "sort", Message: fmt.Sprintf("invalid sort key %q", string(field))}
	}

	dir := "ASC"
	if descending {
		dir = "DESC"
	}
	if field == entity.SortByID {
		return "ORDER BY id " + dir, nil
	}
	return fmt.Sprintf("ORDER BY %s %s, id %s", expr, dir, dir), nil
}

// EscapeILIKE escapes the LIKE wildcards so that search text matches literally.
func EscapeILIKE(s string) string {
	return ilikeEscaper.Replace(s)
}
