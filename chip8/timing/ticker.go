package timing

import "time"

// TickerLimiter paces frames with a time.Ticker. Ticks missed while a frame
// ran long are dropped by the ticker, so a slow frame is never caught up.
type TickerLimiter struct {
	period time.Duration
	ticker *time.Ticker
}

// NewTickerLimiter returns a limiter ticking at TargetFPS. Call Stop when done.
func NewTickerLimiter() *TickerLimiter {
	return newTickerLimiter(FrameDuration())
}

func newTickerLimiter(period time.Duration) *TickerLimiter {
	return &TickerLimiter{
		period: period,
		ticker: time.NewTicker(period),
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

// Reset restarts the tick phase from now.
func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
