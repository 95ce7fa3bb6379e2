package game

import (
	"math"
	"math/rand"
	"time"
)

// TestSim is a headless harness used by tests and the headless runner. It
// drives a Driver on simulated time: every frame advances the clock by one
// tick and every ticksPerSecond playing frames tick the countdown.
type TestSim struct {
	Width  int
	Height int
	Driver *Driver
	Log    *EventLog
	Now    time.Time

	rng        *rand.Rand
	sound      SoundBoard
	haptics    Haptics
	startLevel int
	sinceTick  int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // viewport, seed, devices: applied before the driver exists
	simOptRun                        // applied after the driver is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithViewport sets the playfield dimensions.
func WithViewport(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithSound routes sound calls to s.
func WithSound(s SoundBoard) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.sound = s }}
}

// WithHaptics routes vibration pulses to h.
func WithHaptics(h Haptics) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.haptics = h }}
}

// WithStartLevel makes Start begin at level n instead of 1.
func WithStartLevel(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.startLevel = n }}
}

// WithStarted starts the run immediately after construction.
func WithStarted() SimOption {
	return SimOption{simOptRun, func(ts *TestSim) { ts.Start() }}
}

// NewTestSim constructs a TestSim from the given options in two passes:
//  1. Infrastructure (viewport, seed, sound, haptics, start level)
//  2. Build the driver, then run options (auto start)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:      800,
		Height:     600,
		Now:        time.Unix(1700000000, 0),
		rng:        rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		startLevel: 1,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Log = NewEventLog()
	ts.Driver = NewDriver(DriverConfig{
		Width:   float64(ts.Width),
		Height:  float64(ts.Height),
		Rand:    ts.rng,
		Sound:   ts.sound,
		Haptics: ts.haptics,
		Log:     ts.Log,
		Clock:   func() time.Time { return ts.Now },
	})
	ts.Driver.Session.OnTransition(func(t Transition) {
		if t.FreshLevel {
			ts.sinceTick = 0
		}
	})
	for _, o := range opts {
		if o.kind == simOptRun {
			o.fn(ts)
		}
	}
	return ts
}

// Start begins a run at the configured start level.
func (ts *TestSim) Start() bool {
	return ts.Driver.Session.StartAt(ts.startLevel)
}

// State returns the session state.
func (ts *TestSim) State() State { return ts.Driver.Session.State() }

// Level returns the current level number.
func (ts *TestSim) Level() int { return ts.Driver.Session.Level() }

// Step advances one frame of simulated time.
func (ts *TestSim) Step() {
	playing := ts.State() == StatePlaying
	ts.Now = ts.Now.Add(time.Second / ticksPerSecond)
	ts.Driver.Frame(ts.Now)
	if !playing || ts.State() != StatePlaying {
		return
	}
	ts.sinceTick++
	if ts.sinceTick >= ticksPerSecond {
		ts.sinceTick = 0
		ts.Driver.Countdown.Tick()
	}
}

// RunFrames advances the simulation n frames.
func (ts *TestSim) RunFrames(n int) {
	for i := 0; i < n; i++ {
		ts.Step()
	}
}

// RunUntil advances the simulation up to maxFrames, stopping early if predicate
// returns true. Returns the frame at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.Driver.FrameCount()
		}
	}
	return -1
}

// Swat presses at (x, y) at the current simulated time.
func (ts *TestSim) Swat(x, y float64) (swatted, hit bool) {
	return ts.Driver.Press(x, y, ts.Now)
}

// SwatFly presses directly on the fly with the given id. It reports false
// when no living fly has that id.
func (ts *TestSim) SwatFly(id int) (hit bool) {
	for _, f := range ts.Driver.Engine.Flies() {
		if f.ID == id && f.Alive {
			_, hit = ts.Swat(f.X, f.Y)
			return hit
		}
	}
	return false
}

// NearestFly returns the living fly closest to (x, y).
func (ts *TestSim) NearestFly(x, y float64) (Fly, bool) {
	var best Fly
	bestDist := math.Inf(1)
	found := false
	for _, f := range ts.Driver.Engine.Flies() {
		if !f.Alive {
			continue
		}
		if d := math.Hypot(f.X-x, f.Y-y); d < bestDist {
			best, bestDist, found = f, d, true
		}
	}
	return best, found
}

// Close releases the driver.
func (ts *TestSim) Close() { ts.Driver.Close() }
