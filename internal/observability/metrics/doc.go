// Package metrics provides the Prometheus collectors of the application.
//
// The collectors are registered with the default registry through promauto
// and exposed via the /metrics endpoint:
//   - HTTP request metrics (count, duration, size, in-flight)
//   - Story metrics (created, deleted, votes by direction)
//   - Scrape metrics (runs by status, headlines by result)
//   - Database query duration by operation
//
// Example usage:
//
//	import "social-news/internal/observability/metrics"
//
//	func scrape() {
//	    start := time.Now()
//	    // ... fetch and store headlines ...
//	    metrics.RecordHeadlines(metrics.HeadlineInserted, 12)
//	    metrics.RecordScrape(metrics.ScrapeSuccess, time.Since(start))
//	}
package metrics
