package geocode

import (
	"golang.org/x/time/rate"
)

// newTestLimiter creates a rate limiter that effectively does not limit for tests.
func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

// unlimited is an Option that removes pacing so tests run instantly.
func unlimited() Option {
	return func(o *options) {
		o.limiter = newTestLimiter()
	}
}
