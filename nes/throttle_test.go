package nes

import (
	"testing"
	"time"
)

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func newFakeThrottle(fps float64) (*Throttle, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	th := NewThrottle(fps)
	th.now = clock.Now
	th.sleep = clock.Sleep
	return th, clock
}

func tickFrame(th *Throttle) {
	for i := 0; i < FrameTicks; i++ {
		th.Tick()
	}
}

func TestThrottleSleepsRemainder(t *testing.T) {
	th, clock := newFakeThrottle(50) // 20ms per frame

	tickFrame(th)
	if len(clock.slept) != 0 {
		t.Fatalf("first frame slept %v", clock.slept)
	}

	clock.now = clock.now.Add(5 * time.Millisecond)
	tickFrame(th)
	if len(clock.slept) != 1 || clock.slept[0] != 15*time.Millisecond {
		t.Errorf("got sleeps %v, want [15ms]", clock.slept)
	}

	// A slow frame does not sleep.
	clock.now = clock.now.Add(30 * time.Millisecond)
	tickFrame(th)
	if len(clock.slept) != 1 {
		t.Errorf("slow frame slept: %v", clock.slept)
	}
}

func TestThrottleUnlimited(t *testing.T) {
	th, clock := newFakeThrottle(0)

	for i := 0; i < 3; i++ {
		tickFrame(th)
	}
	if len(clock.slept) != 0 {
		t.Errorf("fps 0 slept %v", clock.slept)
	}
}

func TestThrottleOnlyAtFrameBoundary(t *testing.T) {
	th, clock := newFakeThrottle(60)
	tickFrame(th)

	for i := 0; i < FrameTicks-1; i++ {
		th.Tick()
	}
	if len(clock.slept) != 0 {
		t.Errorf("slept mid frame: %v", clock.slept)
	}
}
