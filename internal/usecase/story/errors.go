// Package story provides the story use cases: listing, creation, content
// patches, votes and deletion.
package story

import "social-news/internal/domain/entity"

// Client-facing errors. Each matches one taxonomy sentinel under errors.Is.
var (
	ErrNoStories      = entity.NewUserError(entity.ErrNotFound, "No stories were found")
	ErrMissingFields  = entity.NewUserError(entity.ErrInvalidArgument, "Request must contain URL & title")
	ErrEmptyPatch     = entity.NewUserError(entity.ErrInvalidArgument, "Request must contain URL and/or title.")
	ErrDuplicateStory = entity.NewUserError(entity.ErrInvalidArgument, "story with this URL already exists")
	ErrIncorrectID    = entity.NewUserError(entity.ErrInvalidArgument, "Incorrect ID.")
	ErrMissingVote    = entity.NewUserError(entity.ErrInvalidArgument, "Request must contain if it is up or down")

	ErrInsertFailed = entity.NewUserError(entity.ErrWriteFailed, "Insert story failed.")
	ErrVoteFailed   = entity.NewUserError(entity.ErrWriteFailed, "Update score failed.")
	ErrUpdateFailed = entity.NewUserError(entity.ErrWriteFailed, "Update story failed.")
	ErrDeleteFailed = entity.NewUserError(entity.ErrWriteFailed, "Delete story failed.")
)
