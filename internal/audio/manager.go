// Package audio synthesises the game's sound: one-shot hit and miss effects
// and a continuous, panned buzz voice per living fly.
package audio

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// Buzzer is the part of a fly the audio layer cares about.
type Buzzer struct {
	ID    int
	X     float64
	Alive bool
}

// Manager owns the synthesis graph and every live buzz voice.
// It is safe to call from the game loop while a backend streams from it.
type Manager struct {
	mu   sync.Mutex
	cfg  Config
	rate beep.SampleRate
	out  Output
	rng  *rand.Rand
	now  func() time.Time

	initialized bool
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl // Paused while the graph is suspended
	root        beep.Streamer
	voices      map[int]*buzzVoice

	outputOnce sync.Once
}

// Option customises a Manager.
type Option func(*Manager)

// WithRand sets the random source used for noise and voice pitch.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithClock sets the wall clock driving the pitch wobble.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates an uninitialised manager. out may be nil, in which case
// the graph is built and maintained but nothing is played.
func NewManager(cfg Config, out Output, opts ...Option) *Manager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	m := &Manager{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		out:    out,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- audio only
		now:    time.Now,
		voices: make(map[int]*buzzVoice),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// EnsureInitialized builds the graph root and master gain exactly once and
// attaches the output backend. The graph starts suspended.
func (m *Manager) EnsureInitialized() {
	m.mu.Lock()
	if !m.initialized && m.cfg.Enabled {
		m.mixer = &beep.Mixer{}
		master := newVolume(m.mixer, masterAttenuation*m.cfg.MasterVolume)
		m.ctrl = &beep.Ctrl{Streamer: master, Paused: true}
		m.root = &lockedStreamer{mu: &m.mu, s: m.ctrl}
		m.initialized = true
	}
	ready := m.initialized
	m.mu.Unlock()

	if !ready || m.out == nil {
		return
	}
	// The backend may already be pulling from root, so start it unlocked.
	m.outputOnce.Do(func() {
		if err := m.out.Start(m.root, m.rate); err != nil {
			log.Printf("audio output unavailable, continuing silently: %v", err)
		}
	})
}

// Resume unsuspends the graph; a no-op when already running or uninitialised.
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctrl != nil && m.ctrl.Paused {
		m.ctrl.Paused = false
	}
}

// Suspended reports whether the graph is currently producing silence.
func (m *Manager) Suspended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctrl == nil || m.ctrl.Paused
}

// PlayHitSound fires the squish effect.
func (m *Manager) PlayHitSound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	m.mixer.Add(CreateHitSound(m.rate, m.rng))
}

// PlayMissSound fires the thud effect.
func (m *Manager) PlayMissSound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	m.mixer.Add(CreateMissSound(m.rate, m.rng))
}

// SyncBuzzVoices reconciles the voice pool with the current flies: voices of
// dead or vanished flies fade out, new living flies get a voice, and every
// surviving voice follows its fly in the stereo field.
func (m *Manager) SyncBuzzVoices(flies []Buzzer, viewportWidth float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}

	alive := make(map[int]Buzzer, len(flies))
	for _, f := range flies {
		if f.Alive {
			alive[f.ID] = f
		}
	}

	for id, v := range m.voices {
		if _, ok := alive[id]; ok {
			continue
		}
		v.release(buzzRelease)
		delete(m.voices, id)
	}

	wobble := buzzWobbleDepth * math.Sin(float64(m.now().UnixMilli())*buzzWobbleRate)
	for _, f := range flies {
		if !f.Alive {
			continue
		}
		v, ok := m.voices[f.ID]
		if !ok {
			v = newBuzzVoice(f.ID, buzzBaseFreq+m.rng.Float64()*buzzFreqSpread, m.rate)
			m.voices[f.ID] = v
			m.mixer.Add(v)
		}
		pan := 0.0
		if viewportWidth > 0 {
			pan = 2*f.X/viewportWidth - 1
		}
		v.setTargets(pan, v.base+wobble)
	}
}

// StopAll silences and drops every tracked voice immediately.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.voices {
		v.stop()
		delete(m.voices, id)
	}
}

// VoiceCount returns the number of tracked buzz voices.
func (m *Manager) VoiceCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Streamer returns the locked graph root, or nil before initialisation.
// Backends and tests pull samples from it.
func (m *Manager) Streamer() beep.Streamer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

// Close stops all voices and releases the output backend.
func (m *Manager) Close() error {
	m.StopAll()
	if m.out == nil {
		return nil
	}
	return m.out.Close()
}
