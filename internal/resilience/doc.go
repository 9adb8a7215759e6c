// Package resilience groups the fault-tolerance helpers used around Postgres,
// news feed fetching and notification webhooks:
//
//   - circuitbreaker wraps sony/gobreaker with named configurations
//   - retry runs an operation with exponential backoff and jitter
//
//	err := retry.WithBackoff(ctx, retry.FeedConfig(), func() error {
//	    _, err := cb.Execute(func() (interface{}, error) { return fetch(ctx) })
//	    return err
//	})
package resilience
