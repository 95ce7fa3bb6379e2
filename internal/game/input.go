package game

import (
	"fmt"
	"time"

	"github.com/Garsondee/Fly-Squasher/internal/audio"
	"github.com/Garsondee/Fly-Squasher/internal/level"
)

// SoundBoard is the slice of the audio manager the game drives.
type SoundBoard interface {
	Resume()
	PlayHitSound()
	PlayMissSound()
	SyncBuzzVoices(flies []audio.Buzzer, viewportWidth float64)
	StopAll()
}

// Haptics delivers a short vibration pulse where the platform supports one.
type Haptics interface {
	Vibrate(d time.Duration)
}

// InputMapper turns pointer presses into swats.
type InputMapper struct {
	engine  *Engine
	session *Session
	sound   SoundBoard
	haptics Haptics
	log     *EventLog
	frame   func() int

	cursorX, cursorY float64
	slamUntil        time.Time
}

// NewInputMapper wires a mapper to the world it swats at. sound and haptics
// may be nil.
func NewInputMapper(engine *Engine, session *Session, sound SoundBoard, haptics Haptics, log *EventLog) *InputMapper {
	return &InputMapper{
		engine:  engine,
		session: session,
		sound:   sound,
		haptics: haptics,
		log:     log,
		frame:   func() int { return 0 },
		cursorX: cursorOffscreen,
		cursorY: cursorOffscreen,
	}
}

// Move records the pointer position; the swatter is drawn there.
func (m *InputMapper) Move(x, y float64) {
	m.cursorX, m.cursorY = x, y
}

// Cursor returns the last known pointer position.
func (m *InputMapper) Cursor() (x, y float64) { return m.cursorX, m.cursorY }

// Slamming reports whether the swatter is in its pressed pose at now.
func (m *InputMapper) Slamming(now time.Time) bool {
	return now.Before(m.slamUntil)
}

// Press handles a press at (x, y). Outside active play it only moves the
// cursor. It reports whether the press was a swat and whether it hit.
func (m *InputMapper) Press(x, y float64, now time.Time) (swatted, hit bool) {
	m.Move(x, y)
	if m.session.State() != StatePlaying {
		return false, false
	}

	if m.sound != nil {
		m.sound.Resume()
	}
	if m.haptics != nil {
		m.haptics.Vibrate(hapticDuration)
	}
	m.slamUntil = now.Add(slamDuration)
	m.engine.Shake()

	lvl := m.session.Level()
	width, _ := m.engine.Viewport()
	before := m.engine.AliveCount()
	hit = m.engine.RegisterHit(x, y, level.MustConfig(lvl).SwatterHalfExtent(width))

	m.logSwat(lvl, x, y, hit, before-m.engine.AliveCount())
	if m.sound != nil {
		if hit {
			m.sound.PlayHitSound()
		} else {
			m.sound.PlayMissSound()
		}
	}
	return true, hit
}

func (m *InputMapper) logSwat(lvl int, x, y float64, hit bool, kills int) {
	if m.log == nil {
		return
	}
	frame := m.frame()
	pos := fmt.Sprintf("(%.0f,%.0f)", x, y)
	m.log.Add(frame, lvl, CatInput, "swat", pos, 0)
	if !hit {
		m.log.Add(frame, lvl, CatInput, "miss", pos, 0)
		return
	}
	m.log.Add(frame, lvl, CatInput, "hit", pos, float64(kills))
	m.log.Add(frame, lvl, CatFly, "killed", fmt.Sprintf("%d down, %d left", kills, m.engine.AliveCount()), float64(kills))
}
