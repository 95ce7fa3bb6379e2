package audio

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

type fakeOutput struct {
	starts int
	closed int
	err    error
	src    beep.Streamer
}

func (f *fakeOutput) Start(src beep.Streamer, _ beep.SampleRate) error {
	f.starts++
	f.src = src
	return f.err
}

func (f *fakeOutput) Close() error {
	f.closed++
	return nil
}

func newTestManager(out Output) *Manager {
	fixed := time.Unix(1700000000, 0)
	return NewManager(DefaultConfig(), out,
		WithRand(rand.New(rand.NewSource(7))), // #nosec G404 -- test
		WithClock(func() time.Time { return fixed }),
	)
}

// pull streams d worth of samples from s and returns the peak magnitude.
func pull(t *testing.T, s beep.Streamer, rate beep.SampleRate, d time.Duration) float64 {
	t.Helper()
	buf := make([][2]float64, rate.N(d))
	n, _ := s.Stream(buf)
	peak := 0.0
	for _, smp := range buf[:n] {
		peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
	}
	return peak
}

func TestEnsureInitialized_Idempotent(t *testing.T) {
	out := &fakeOutput{}
	m := newTestManager(out)
	m.EnsureInitialized()
	root := m.Streamer()
	m.EnsureInitialized()
	m.EnsureInitialized()

	if root == nil {
		t.Fatal("expected graph root after initialisation")
	}
	if m.Streamer() != root {
		t.Fatal("graph root was rebuilt on a repeated call")
	}
	if out.starts != 1 {
		t.Fatalf("expected output started once, got %d", out.starts)
	}
}

func TestEnsureInitialized_OutputFailureIsSilent(t *testing.T) {
	out := &fakeOutput{err: errors.New("no device")}
	m := newTestManager(out)
	m.EnsureInitialized()
	m.Resume()
	m.PlayHitSound()
	m.SyncBuzzVoices([]Buzzer{{ID: 1, X: 10, Alive: true}}, 100)
	if m.VoiceCount() != 1 {
		t.Fatalf("graph should keep working without a device, got %d voices", m.VoiceCount())
	}
}

func TestPlayBeforeInit_NoOp(t *testing.T) {
	m := newTestManager(nil)
	m.PlayHitSound()
	m.PlayMissSound()
	m.SyncBuzzVoices([]Buzzer{{ID: 1, Alive: true}}, 100)
	m.Resume()
	if m.VoiceCount() != 0 {
		t.Fatalf("expected no voices before init, got %d", m.VoiceCount())
	}
	if m.Streamer() != nil {
		t.Fatal("expected nil root before init")
	}
}

func TestDisabledConfig_NeverBuildsGraph(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	out := &fakeOutput{}
	m := NewManager(cfg, out)
	m.EnsureInitialized()
	m.SyncBuzzVoices([]Buzzer{{ID: 1, Alive: true}}, 100)
	if m.Streamer() != nil || m.VoiceCount() != 0 || out.starts != 0 {
		t.Fatalf("disabled audio built state: root=%v voices=%d starts=%d", m.Streamer(), m.VoiceCount(), out.starts)
	}
}

func TestSuspendedGraphIsSilent(t *testing.T) {
	m := newTestManager(nil)
	m.EnsureInitialized()
	if !m.Suspended() {
		t.Fatal("graph should start suspended")
	}
	m.PlayHitSound()
	if peak := pull(t, m.Streamer(), m.rate, 20*time.Millisecond); peak != 0 {
		t.Fatalf("suspended graph produced sound (peak %.4f)", peak)
	}

	m.Resume()
	if m.Suspended() {
		t.Fatal("Resume should unsuspend")
	}
	m.Resume() // no-op
	m.PlayHitSound()
	if peak := pull(t, m.Streamer(), m.rate, 20*time.Millisecond); peak == 0 {
		t.Fatal("resumed graph produced silence after a hit")
	}
}

func TestSyncBuzzVoices_TracksAliveFlies(t *testing.T) {
	m := newTestManager(nil)
	m.EnsureInitialized()

	flies := []Buzzer{
		{ID: 1, X: 0, Alive: true},
		{ID: 2, X: 50, Alive: true},
		{ID: 3, X: 100, Alive: true},
	}
	m.SyncBuzzVoices(flies, 100)
	if got := m.VoiceCount(); got != 3 {
		t.Fatalf("expected 3 voices, got %d", got)
	}

	flies[1].Alive = false
	m.SyncBuzzVoices(flies, 100)
	if got := m.VoiceCount(); got != 2 {
		t.Fatalf("expected 2 voices after a kill, got %d", got)
	}

	m.SyncBuzzVoices(flies[:1], 100)
	if got := m.VoiceCount(); got != 1 {
		t.Fatalf("expected 1 voice after flies vanished, got %d", got)
	}

	// Re-syncing the same set must not duplicate voices.
	m.SyncBuzzVoices(flies[:1], 100)
	if got := m.VoiceCount(); got != 1 {
		t.Fatalf("expected voice pool to stay at 1, got %d", got)
	}

	m.StopAll()
	if got := m.VoiceCount(); got != 0 {
		t.Fatalf("expected 0 voices after StopAll, got %d", got)
	}
}

func TestSyncBuzzVoices_NeverExceedsAlive(t *testing.T) {
	m := newTestManager(nil)
	m.EnsureInitialized()
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test
	flies := make([]Buzzer, 8)
	for i := range flies {
		flies[i] = Buzzer{ID: i + 1, X: float64(i * 10), Alive: true}
	}
	for round := 0; round < 50; round++ {
		flies[rng.Intn(len(flies))].Alive = rng.Intn(3) != 0
		m.SyncBuzzVoices(flies, 80)
		alive := 0
		for _, f := range flies {
			if f.Alive {
				alive++
			}
		}
		if got := m.VoiceCount(); got != alive {
			t.Fatalf("round %d: %d voices for %d alive flies", round, got, alive)
		}
	}
}

func TestBuzzVoice_ReleaseStopsWithinDeadline(t *testing.T) {
	rate := beep.SampleRate(48000)
	v := newBuzzVoice(1, 160, rate)
	pull(t, v, rate, 600*time.Millisecond)
	if v.gain < buzzSustainGain*0.99 {
		t.Fatalf("expected sustain gain after attack, got %.4f", v.gain)
	}

	v.release(buzzRelease)
	buf := make([][2]float64, rate.N(buzzRelease)+64)
	n, _ := v.Stream(buf)
	if !v.done() {
		t.Fatal("voice still running after release deadline")
	}
	if n > rate.N(buzzRelease)+1 {
		t.Fatalf("voice streamed %d samples past release", n-rate.N(buzzRelease))
	}
	if n2, ok := v.Stream(buf); ok || n2 != 0 {
		t.Fatalf("stopped voice kept streaming: n=%d ok=%v", n2, ok)
	}
}

func TestBuzzVoice_PanFollowsTarget(t *testing.T) {
	rate := beep.SampleRate(48000)
	v := newBuzzVoice(1, 160, rate)
	v.setTargets(2*90.0/100.0-1, 160)
	pull(t, v, rate, time.Second)
	if math.Abs(v.pan.value-0.8) > 0.01 {
		t.Fatalf("expected pan to settle near 0.8, got %.3f", v.pan.value)
	}

	v.setTargets(5, 160) // clamped
	pull(t, v, rate, time.Second)
	if v.pan.value > 1 || v.pan.value < 0.99 {
		t.Fatalf("expected clamped pan near 1, got %.3f", v.pan.value)
	}
}

func TestStopAll_SilencesImmediately(t *testing.T) {
	m := newTestManager(nil)
	m.EnsureInitialized()
	m.Resume()
	m.SyncBuzzVoices([]Buzzer{{ID: 1, X: 10, Alive: true}, {ID: 2, X: 90, Alive: true}}, 100)
	if peak := pull(t, m.Streamer(), m.rate, 600*time.Millisecond); peak == 0 {
		t.Fatal("expected audible buzz before StopAll")
	}
	m.StopAll()
	if peak := pull(t, m.Streamer(), m.rate, 20*time.Millisecond); peak != 0 {
		t.Fatalf("expected silence after StopAll, got peak %.5f", peak)
	}
}

func TestClose_ReleasesOutput(t *testing.T) {
	out := &fakeOutput{}
	m := newTestManager(out)
	m.EnsureInitialized()
	m.SyncBuzzVoices([]Buzzer{{ID: 4, Alive: true}}, 100)
	if err := m.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if out.closed != 1 || m.VoiceCount() != 0 {
		t.Fatalf("expected output closed and voices cleared, closed=%d voices=%d", out.closed, m.VoiceCount())
	}
}
