package game

import (
	"testing"
	"time"
)

// dumpLog prints the full event log to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	if len(ts.Log.Entries()) == 0 {
		t.Log("(no log entries)")
		return
	}
	t.Log("\n" + ts.Log.Format())
}

// killAll swats every living fly where it stands.
func killAll(ts *TestSim) {
	for _, f := range ts.Driver.Engine.Flies() {
		if f.Alive {
			ts.SwatFly(f.ID)
		}
	}
}

func TestDriver_StartInitialisesLevel(t *testing.T) {
	ts := NewTestSim(WithStarted())
	defer ts.Close()
	if ts.State() != StatePlaying || ts.Level() != 1 {
		t.Fatalf("expected PLAYING level 1, got %s level %d", ts.State(), ts.Level())
	}
	if len(ts.Driver.Engine.Flies()) != 1 {
		t.Fatalf("expected 1 fly, got %d", len(ts.Driver.Engine.Flies()))
	}
	if ts.Driver.Countdown.Remaining() != 10 {
		t.Fatalf("expected a 10s timer, got %d", ts.Driver.Countdown.Remaining())
	}
	if !ts.Log.HasEntry(CatLevel, "init", "1 flies") {
		dumpLog(t, ts)
		t.Fatal("level init not logged")
	}
}

func TestDriver_FramesOutsidePlayDoNothing(t *testing.T) {
	snd := &fakeSound{}
	ts := NewTestSim(WithSound(snd))
	defer ts.Close()
	ts.RunFrames(120)
	if snd.syncs != 0 || len(ts.Driver.Engine.Flies()) != 0 {
		t.Fatalf("START screen simulated: syncs=%d flies=%d", snd.syncs, len(ts.Driver.Engine.Flies()))
	}
	if ts.Driver.FrameCount() != 120 {
		t.Fatalf("expected 120 frames counted, got %d", ts.Driver.FrameCount())
	}
}

func TestDriver_SyncsVoicesEveryPlayingFrame(t *testing.T) {
	snd := &fakeSound{}
	ts := NewTestSim(WithSound(snd), WithViewport(1024, 768), WithStartLevel(5), WithStarted())
	defer ts.Close()
	ts.RunFrames(10)
	if snd.syncs != 10 {
		t.Fatalf("expected 10 voice syncs, got %d", snd.syncs)
	}
	if snd.lastAlive != 5 || snd.lastWidth != 1024 {
		t.Fatalf("sync saw %d alive at width %.0f", snd.lastAlive, snd.lastWidth)
	}
	f := ts.Driver.Engine.Flies()[0]
	ts.SwatFly(f.ID)
	ts.Step()
	if snd.lastAlive != ts.Driver.Engine.AliveCount() {
		t.Fatalf("voices track %d flies, engine has %d alive", snd.lastAlive, ts.Driver.Engine.AliveCount())
	}
}

func TestDriver_LevelClearAfterDebounce(t *testing.T) {
	snd := &fakeSound{}
	ts := NewTestSim(WithSound(snd), WithStarted())
	defer ts.Close()

	killAll(ts)
	frames := ts.RunUntil(func(ts *TestSim) bool { return ts.State() == StateLevelClear }, 120)
	if frames < 0 {
		dumpLog(t, ts)
		t.Fatal("level never cleared")
	}
	// 0.5s at 60 frames per second, armed on the first frame after the kill.
	if frames < 30 || frames > 32 {
		t.Fatalf("expected clear ~30 frames after the last kill, got %d", frames)
	}
	if snd.stops != 1 {
		t.Fatalf("expected StopAll on level clear, got %d", snd.stops)
	}
	if ts.Driver.Countdown.Running() {
		t.Fatal("countdown still running after clear")
	}
	if e, ok := ts.Log.LastOf(CatLevel, "cleared"); !ok || e.NumVal < 0.5 || e.NumVal > 0.55 {
		t.Fatalf("unexpected clear entry %+v ok=%v", e, ok)
	}

	// Frames on the clear screen leave the world alone.
	splats := len(ts.Driver.Engine.Splats())
	ts.RunFrames(60)
	if ts.State() != StateLevelClear || len(ts.Driver.Engine.Splats()) != splats {
		t.Fatal("clear screen changed the world")
	}

	if !ts.Driver.Advance() || ts.Level() != 2 || ts.State() != StatePlaying {
		t.Fatalf("expected level 2 after advancing, got %s level %d", ts.State(), ts.Level())
	}
	if len(ts.Driver.Engine.Splats()) != 0 || ts.Driver.Engine.AliveCount() != 2 {
		t.Fatal("level 2 did not start clean")
	}
}

func TestDriver_TimeoutIsGameOver(t *testing.T) {
	snd := &fakeSound{}
	ts := NewTestSim(WithSound(snd), WithStarted())
	defer ts.Close()

	frames := ts.RunUntil(func(ts *TestSim) bool { return ts.State() != StatePlaying }, 2000)
	if ts.State() != StateGameOver {
		dumpLog(t, ts)
		t.Fatalf("expected GAME_OVER, got %s", ts.State())
	}
	if frames < 600 || frames > 602 {
		t.Fatalf("expected timeout after ~600 frames, got %d", frames)
	}
	if snd.stops != 1 {
		t.Fatalf("expected StopAll on game over, got %d", snd.stops)
	}
	if !ts.Log.HasEntry(CatTimer, "expired", "1 flies left") {
		dumpLog(t, ts)
		t.Fatal("timeout not logged")
	}

	// Retry restarts level 1 with a full timer.
	if !ts.Driver.Advance() || ts.Level() != 1 || ts.Driver.Countdown.Remaining() != 10 {
		t.Fatalf("retry failed: %s level %d timer %d", ts.State(), ts.Level(), ts.Driver.Countdown.Remaining())
	}
}

func TestDriver_FullRunReachesVictory(t *testing.T) {
	snd := &fakeSound{}
	ts := NewTestSim(WithSound(snd), WithSeed(99), WithStarted())
	defer ts.Close()

	for lvl := 1; lvl <= 5; lvl++ {
		if ts.Level() != lvl || ts.State() != StatePlaying {
			t.Fatalf("expected PLAYING level %d, got %s level %d", lvl, ts.State(), ts.Level())
		}
		ts.RunFrames(5)
		killAll(ts)
		if ts.RunUntil(func(ts *TestSim) bool { return ts.State() == StateLevelClear }, 60) < 0 {
			dumpLog(t, ts)
			t.Fatalf("level %d never cleared", lvl)
		}
		ts.Driver.Advance()
	}
	if ts.State() != StateVictory {
		t.Fatalf("expected VICTORY, got %s", ts.State())
	}
	if snd.stops != 6 {
		t.Fatalf("expected StopAll on five clears and victory, got %d", snd.stops)
	}
	st := ts.Log.Stats()
	if st.LevelsCleared != 5 || !st.Victory || st.Kills != 14 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDriver_PauseFreezesWorldAndTimer(t *testing.T) {
	snd := &fakeSound{}
	ts := NewTestSim(WithSound(snd), WithStartLevel(3), WithStarted())
	defer ts.Close()
	ts.RunFrames(90)
	remaining := ts.Driver.Countdown.Remaining()
	before := append([]Fly(nil), ts.Driver.Engine.Flies()...)

	if !ts.Driver.TogglePause() || ts.State() != StatePaused {
		t.Fatal("pause failed")
	}
	if snd.stops != 1 {
		t.Fatalf("expected StopAll on pause, got %d", snd.stops)
	}
	ts.RunFrames(600)
	if ts.Driver.Countdown.Remaining() != remaining {
		t.Fatalf("timer moved while paused: %d -> %d", remaining, ts.Driver.Countdown.Remaining())
	}
	for i, f := range ts.Driver.Engine.Flies() {
		if f.X != before[i].X || f.Y != before[i].Y {
			t.Fatal("flies moved while paused")
		}
	}
	if swatted, _ := ts.Swat(before[0].X, before[0].Y); swatted {
		t.Fatal("swat registered while paused")
	}

	if !ts.Driver.TogglePause() || ts.State() != StatePlaying || ts.Level() != 3 {
		t.Fatalf("resume failed: %s level %d", ts.State(), ts.Level())
	}
	if len(ts.Driver.Engine.Flies()) != 3 || ts.Driver.Engine.AliveCount() != 3 {
		t.Fatal("resume reinitialised the level")
	}
}

func TestDriver_LevelStartUsesClock(t *testing.T) {
	ts := NewTestSim()
	defer ts.Close()
	ts.RunFrames(3)
	ts.Start()
	if !ts.Driver.levelStart.Equal(ts.Now) {
		t.Fatalf("level start %v, want %v", ts.Driver.levelStart, ts.Now)
	}
	ts.Step()
	if got := ts.Now.Sub(ts.Driver.levelStart); got != time.Second/ticksPerSecond {
		t.Fatalf("expected one tick since start, got %v", got)
	}
}
