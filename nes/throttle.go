package nes

import "time"

// FrameTicks is the number of bus ticks in one NTSC frame.
const FrameTicks = ppuDots * ppuScanlines

// Throttle keeps emulation from running faster than a target frame rate.
// It only ever sleeps and has no effect on emulated state.
type Throttle struct {
	Fps float64

	now   func() time.Time
	sleep func(time.Duration)

	ticks int
	last  time.Time
}

func NewThrottle(fps float64) *Throttle {
	return &Throttle{
		Fps:   fps,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Tick counts one bus tick. Once per frame the elapsed wall time is compared
// with the frame period and the remainder is slept.
func (t *Throttle) Tick() {
	t.ticks++
	if t.ticks < FrameTicks {
		return
	}
	t.ticks = 0

	now := t.now()
	if t.Fps > 0 && !t.last.IsZero() {
		period := time.Duration(float64(time.Second) / t.Fps)
		if elapsed := now.Sub(t.last); elapsed < period {
			t.sleep(period - elapsed)
			now = now.Add(period - elapsed)
		}
	}
	t.last = now
}
