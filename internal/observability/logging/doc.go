// Package logging builds slog loggers and carries them through request contexts.
//
// The request logging middleware stores a logger tagged with the request id in
// the context; code further down picks it up with FromContext:
//
//	logging.FromContext(r.Context()).Warn("vote rejected", slog.Int64("id", id))
package logging
