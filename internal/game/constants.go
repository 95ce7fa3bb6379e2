package game

import "time"

const (
	// shakePeak is the shake magnitude set by every swat.
	shakePeak = 15.0
	// shakeDecay is applied to the shake magnitude once per frame.
	shakeDecay = 0.9

	// jitterScale converts a level's erraticness into the heading perturbation range.
	jitterScale = 10.0

	// splatScale sizes a splat relative to the fly that made it.
	splatScale = 1.8

	// levelClearDelay lets the last squish be seen and heard before the clear screen.
	levelClearDelay = 500 * time.Millisecond

	slamDuration   = 100 * time.Millisecond
	slamShrink     = 0.85
	hapticDuration = 30 * time.Millisecond

	// cursorOffscreen is where the swatter sits before the pointer is seen.
	cursorOffscreen = -100.0

	countdownPeriod = time.Second

	// ticksPerSecond matches Ebitengine's default TPS; headless runs advance
	// simulated time by one tick per frame.
	ticksPerSecond = 60
)
