// Package resilience holds fault tolerance helpers for outbound calls.
//
// Only circuit breaking is provided; scrapes are never retried.
//
//	cb := circuitbreaker.New(circuitbreaker.NewsFetchConfig())
//	html, err := circuitbreaker.Do(cb, func() (string, error) {
//	    return fetch(ctx, url)
//	})
package resilience
