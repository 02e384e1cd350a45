package push

import "time"

// backoff returns the delay before reconnect attempt n (1-based): initial
// doubled n-1 times, capped at maxDelay.
func backoff(n int, initial, maxDelay time.Duration) time.Duration {
	if n < 1 {
		n = 1
	}
	d := initial
	for i := 1; i < n; i++ {
		d *= 2
		if d >= maxDelay {
			return maxDelay
		}
	}
	if d > maxDelay {
		return maxDelay
	}
	return d
}
