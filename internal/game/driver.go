package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Garsondee/Fly-Squasher/internal/audio"
	"github.com/Garsondee/Fly-Squasher/internal/level"
)

// DriverConfig describes the pieces a frontend plugs into a Driver.
type DriverConfig struct {
	Width, Height float64
	Rand          *rand.Rand
	Sound         SoundBoard // nil plays nothing
	Haptics       Haptics    // nil vibrates nothing
	// CountdownPeriod is the wall-clock length of one timer second. Zero
	// makes the countdown manual; the caller then ticks it.
	CountdownPeriod time.Duration
	Log             *EventLog
	// Clock stamps level starts and pauses; defaults to time.Now.
	Clock func() time.Time
}

// Driver composes the session, the engine, the countdown, input and sound
// into one frontend-agnostic frame loop. Every frontend (window, terminal,
// headless) feeds it input and calls Frame once per refresh.
type Driver struct {
	Session   *Session
	Engine    *Engine
	Countdown *Countdown
	Input     *InputMapper
	Log       *EventLog

	sound   SoundBoard
	frame   int
	buzzers []audio.Buzzer

	clock      func() time.Time
	levelStart time.Time
	pausedAt   time.Time
}

// NewDriver builds a driver on the START screen.
func NewDriver(cfg DriverConfig) *Driver {
	if cfg.Log == nil {
		cfg.Log = NewEventLog()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	d := &Driver{
		Session:   NewSession(),
		Engine:    NewEngine(cfg.Width, cfg.Height, cfg.Rand),
		Countdown: NewCountdown(cfg.CountdownPeriod),
		Log:       cfg.Log,
		sound:     cfg.Sound,
		clock:     cfg.Clock,
	}
	d.Input = NewInputMapper(d.Engine, d.Session, cfg.Sound, cfg.Haptics, cfg.Log)
	d.Input.frame = d.FrameCount
	d.Session.OnTransition(d.onTransition)
	return d
}

// FrameCount returns the number of frames run so far.
func (d *Driver) FrameCount() int { return d.frame }

// Frame runs one simulation frame at now: step the world, reconcile buzz
// voices, then apply any level clear or timeout. Outside PLAYING it only
// counts the frame.
func (d *Driver) Frame(now time.Time) {
	d.frame++
	if d.Session.State() != StatePlaying {
		return
	}

	res := d.Engine.Step(now)
	if d.sound != nil {
		width, _ := d.Engine.Viewport()
		d.buzzers = d.Engine.Buzzers(d.buzzers[:0])
		d.sound.SyncBuzzVoices(d.buzzers, width)
	}

	if res.LevelCleared {
		d.Log.Add(d.frame, d.Session.Level(), CatLevel, "cleared",
			fmt.Sprintf("%.1fs", now.Sub(d.levelStart).Seconds()), now.Sub(d.levelStart).Seconds())
		d.Session.LevelCleared()
		return
	}
	if d.Countdown.Remaining() <= 0 {
		d.Log.Add(d.frame, d.Session.Level(), CatTimer, "expired",
			fmt.Sprintf("%d flies left", d.Engine.AliveCount()), float64(d.Engine.AliveCount()))
		d.Session.GameOver()
	}
}

// Resize propagates a viewport change.
func (d *Driver) Resize(width, height float64) {
	d.Engine.Resize(width, height)
}

// Press forwards a pointer press at now.
func (d *Driver) Press(x, y float64, now time.Time) (swatted, hit bool) {
	return d.Input.Press(x, y, now)
}

// Advance performs the overlay action for the current screen: start or
// retry a run, move past a cleared level, or resume from pause. It reports
// whether anything happened.
func (d *Driver) Advance() bool {
	switch d.Session.State() {
	case StateStart, StateGameOver, StateVictory:
		return d.Session.Start()
	case StateLevelClear:
		return d.Session.NextLevel()
	case StatePaused:
		return d.Session.Resume()
	}
	return false
}

// TogglePause pauses active play or resumes a paused level.
func (d *Driver) TogglePause() bool {
	if d.Session.State() == StatePaused {
		return d.Session.Resume()
	}
	return d.Session.Pause()
}

// Close stops the countdown goroutine.
func (d *Driver) Close() {
	d.Countdown.Stop()
}

func (d *Driver) onTransition(t Transition) {
	d.Log.Add(d.frame, t.Level, CatSession, "transition", t.From.String()+" -> "+t.To.String(), 0)

	if t.From == StatePlaying || t.To == StateVictory {
		d.Countdown.Stop()
		if d.sound != nil {
			d.sound.StopAll()
		}
		d.Log.Add(d.frame, t.Level, CatAudio, "stop_all", t.To.String(), 0)
	}
	now := d.clock()
	if t.To == StatePaused {
		d.pausedAt = now
	}
	if t.To != StatePlaying {
		return
	}
	if t.From == StatePaused {
		d.levelStart = d.levelStart.Add(now.Sub(d.pausedAt))
	}
	if t.FreshLevel {
		cfg := level.MustConfig(t.Level)
		d.Engine.InitLevel(cfg)
		d.Countdown.Reset(cfg.TimerSeconds)
		d.levelStart = now
		d.Log.Add(d.frame, t.Level, CatLevel, "init",
			fmt.Sprintf("%d flies, %ds", cfg.FlyCount, cfg.TimerSeconds), float64(cfg.FlyCount))
	}
	d.Countdown.Start()
}
