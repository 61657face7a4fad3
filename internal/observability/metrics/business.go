package metrics

import (
	"time"
)

// Scrape run statuses.
const (
	ScrapeSuccess     = "success"
	ScrapeRejected    = "rejected"
	ScrapeUnreachable = "unreachable"
	ScrapeFailed      = "failed"
)

// Headline results.
const (
	HeadlineInserted = "inserted"
	HeadlineSkipped  = "skipped"
	HeadlineFailed   = "failed"
)

// RecordStoryCreated counts one created story.
func RecordStoryCreated() {
	StoriesCreatedTotal.Inc()
}

// RecordStoryDeleted counts one deleted story.
func RecordStoryDeleted() {
	StoriesDeletedTotal.Inc()
}

// RecordVote counts a vote. Direction is "up" or "down".
func RecordVote(direction string) {
	StoryVotesTotal.WithLabelValues(direction).Inc()
}

// RecordScrape records the outcome and duration of a scrape run.
// Rejected runs never reached the network and are not timed.
func RecordScrape(status string, duration time.Duration) {
	ScrapeRunsTotal.WithLabelValues(status).Inc()
	if status != ScrapeRejected {
		ScrapeDuration.Observe(duration.Seconds())
	}
}

// RecordHeadlines adds n headlines with the given result.
func RecordHeadlines(result string, n int) {
	if n <= 0 {
		return
	}
	ScrapeHeadlinesTotal.WithLabelValues(result).Add(float64(n))
}

// RecordDBQuery records the duration of a database query operation.
// Operation names the repository method (e.g., "list", "vote").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
