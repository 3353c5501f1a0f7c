package retry

import "time"

// ExponentialBackoff returns delay based on attempt number.
// The delay doubles with each attempt: base * 2^attempt
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	return base * (1 << attempt)
}

// CappedBackoff is ExponentialBackoff bounded by max, so retry delays for
// long-failing tasks do not grow without limit.
func CappedBackoff(attempt int, base, max time.Duration) time.Duration {
	d := ExponentialBackoff(attempt, base)
	if d > max || d <= 0 {
		return max
	}
	return d
}
