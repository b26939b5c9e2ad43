package consumer

import "time"

func SetRetryBackoff(d time.Duration) (restore func()) {
	prev, prevMax := retryBackoff, maxRetryBackoff
	retryBackoff, maxRetryBackoff = d, d
	return func() { retryBackoff, maxRetryBackoff = prev, prevMax }
}
