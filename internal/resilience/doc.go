// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to keep the
// service responsive when its dependencies misbehave.
//
// The package supports:
//   - Circuit breakers for external calls (news provider API, article scraping, database)
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ProviderAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.WithBackoff(ctx, retry.ProviderAPIConfig(), func() error {
//	    return performOperation()
//	})
package resilience
