package timing

import (
	"log/slog"
	"time"
)

// maxLag is how far behind schedule the limiter may fall before it gives up
// catching up and restarts from the current time.
const maxLag = 100 * time.Millisecond

// AdaptiveLimiter sleeps until a deadline that advances by a fixed frame
// duration, so short overruns are absorbed by shorter sleeps on the
// following frames.
type AdaptiveLimiter struct {
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	frameCounter    int64
	windowStart     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	return newAdaptiveLimiter(time.Now, time.Sleep)
}

func newAdaptiveLimiter(now func() time.Time, sleep func(time.Duration)) *AdaptiveLimiter {
	a := &AdaptiveLimiter{
		targetFrameTime: FrameDuration(),
		now:             now,
		sleep:           sleep,
	}
	a.Reset()
	return a
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := a.now()
	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)

	if wait := a.nextFrameTime.Sub(now); wait > 0 {
		a.sleep(wait)
	} else if -wait > maxLag {
		slog.Debug("Frame limiter fell behind, resyncing", "lag_ms", (-wait).Milliseconds())
		a.nextFrameTime = now
	}

	a.frameCounter++
	if a.frameCounter%TargetFPS == 0 {
		end := a.now()
		if elapsed := end.Sub(a.windowStart); elapsed > 0 {
			slog.Debug("Frame timing", "fps", float64(TargetFPS)*float64(time.Second)/float64(elapsed))
		}
		a.windowStart = end
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.nextFrameTime = a.now()
	a.windowStart = a.nextFrameTime
	a.frameCounter = 0
}
