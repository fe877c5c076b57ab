package registration

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// countdown gates OTP resends: one send per cooldown window.
type countdown struct {
	cooldown time.Duration
	limiter  *rate.Limiter
}

func newCountdown(cooldown time.Duration) *countdown {
	c := &countdown{cooldown: cooldown}
	c.reset()
	return c
}

// reset forgets any running countdown.
func (c *countdown) reset() {
	if c.cooldown <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	c.limiter = rate.NewLimiter(rate.Every(c.cooldown), 1)
}

// start begins a full window at now.
func (c *countdown) start(now time.Time) {
	c.reset()
	c.limiter.AllowN(now, 1)
}

func (c *countdown) ready(now time.Time) bool {
	if c.cooldown <= 0 {
		return true
	}
	// float drift in the refill math must not add a tick
	return c.limiter.TokensAt(now) >= 1-1e-9
}

// remaining rounds up to whole seconds, which is what a user is shown.
func (c *countdown) remaining(now time.Time) time.Duration {
	if c.ready(now) {
		return 0
	}
	deficit := 1 - c.limiter.TokensAt(now)
	left := time.Duration(deficit * float64(c.cooldown)).Round(time.Millisecond)
	secs := math.Ceil(left.Seconds())
	return time.Duration(secs) * time.Second
}
