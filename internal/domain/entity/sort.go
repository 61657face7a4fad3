package entity

import (
	"fmt"
	"strings"
)

// SortField is a whitelisted column that story listings can be ordered by.
type SortField string

const (
	SortByID        SortField = "id"
	SortByTitle     SortField = "title"
	SortByURL       SortField = "url"
	SortByScore     SortField = "score"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// DefaultSortField is used when the caller does not name a sort key.
const DefaultSortField = SortByCreatedAt

// sortAliases maps every accepted query value to its column.
var sortAliases = map[string]SortField{
	"created":    SortByCreatedAt,
	"modified":   SortByUpdatedAt,
	"id":         SortByID,
	"title":      SortByTitle,
	"url":        SortByURL,
	"score":      SortByScore,
	"created_at": SortByCreatedAt,
	"updated_at": SortByUpdatedAt,
}

// ParseSortField resolves a sort key from a query string.
// An empty key selects DefaultSortField. Unknown keys are rejected so that
// nothing caller-supplied ever reaches an ORDER BY clause.
func ParseSortField(raw string) (SortField, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return DefaultSortField, nil
	}
	field, ok := sortAliases[key]
	if !ok {
		return "", &ValidationError{Field: "sort", Message: fmt.Sprintf("invalid sort key %q", raw)}
	}
	return field, nil
}

// ParseOrder reports whether the order word asks for descending results.
// Empty, "asc" and "ascending" are ascending; "desc" and "descending" are descending.
func ParseOrder(raw string) (descending bool, err error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc", "ascending":
		return false, nil
	case "desc", "descending":
		return true, nil
	default:
		return false, &ValidationError{Field: "order", Message: fmt.Sprintf("invalid order %q", raw)}
	}
}
