package session

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds the startup probe: at most MaxAttempts calls with a
// constant Delay between them.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy tolerates one transient failure with a one second pause.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, Delay: time.Second}
}

// backoff builds a fresh go-retry backoff; backoffs are stateful, so one is
// needed per probe. Zero delay is allowed.
func (p RetryPolicy) backoff() retry.Backoff {
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}
	constant := retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	})

	var retries uint64
	if p.MaxAttempts > 1 {
		retries = uint64(p.MaxAttempts - 1)
	}
	return retry.WithMaxRetries(retries, constant)
}
