// Package entity defines the core domain entities and validation logic for the application.
// It contains the Story record, vote directions, the accepted listing sort keys,
// and the error taxonomy shared by every layer.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// Story represents a news item that users can vote on.
type Story struct {
	ID        int64
	Title     string
	URL       string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Direction is the polarity of a vote.
type Direction int

const (
	DirectionUp Direction = iota + 1
	DirectionDown
)

// ParseDirection converts the raw "up" / "down" string received at the boundary.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "up":
		return DirectionUp, nil
	case "down":
		return DirectionDown, nil
	case "":
		return 0, &ValidationError{Field: "direction", Message: "is required"}
	default:
		return 0, &ValidationError{Field: "direction", Message: fmt.Sprintf("must be up or down, got %q", raw)}
	}
}

// Delta returns the score change applied by a vote in this direction.
func (d Direction) Delta() int {
	switch d {
	case DirectionUp:
		return 1
	case DirectionDown:
		return -1
	default:
		return 0
	}
}

// Code returns the single character stored in the votes table.
func (d Direction) Code() string {
	switch d {
	case DirectionUp:
		return "u"
	case DirectionDown:
		return "d"
	default:
		return ""
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}
