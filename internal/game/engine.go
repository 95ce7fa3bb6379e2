package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/Garsondee/Fly-Squasher/internal/audio"
	"github.com/Garsondee/Fly-Squasher/internal/level"
)

// StepResult reports what happened during one Engine.Step.
type StepResult struct {
	// LevelCleared is true exactly once per level, on the first step at
	// least levelClearDelay after the last fly died.
	LevelCleared bool
}

// Engine owns the world of a single level: the flies, their splats and the
// screen-shake magnitude. It knows nothing about session state; the caller
// only steps it while the session is playing.
type Engine struct {
	width, height float64
	rng           *rand.Rand

	flies  []Fly
	splats []Splat
	shake  float64
	nextID int

	clearArmed    bool
	clearDue      time.Time
	clearReported bool
}

// NewEngine creates an engine for a width x height viewport.
func NewEngine(width, height float64, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- gameplay randomness
	}
	return &Engine{width: width, height: height, rng: rng}
}

// InitLevel discards the previous level's flies and splats and spawns
// cfg.FlyCount fresh flies uniformly across the viewport.
func (e *Engine) InitLevel(cfg level.Config) {
	e.flies = make([]Fly, 0, cfg.FlyCount)
	e.splats = nil
	e.shake = 0
	e.clearArmed = false
	e.clearReported = false

	for i := 0; i < cfg.FlyCount; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		e.nextID++
		e.flies = append(e.flies, Fly{
			ID:          e.nextID,
			X:           e.rng.Float64() * e.width,
			Y:           e.rng.Float64() * e.height,
			VX:          math.Cos(angle) * cfg.FlySpeed,
			VY:          math.Sin(angle) * cfg.FlySpeed,
			Angle:       angle,
			Size:        cfg.FlySize,
			Speed:       cfg.FlySpeed,
			Erraticness: cfg.Erraticness,
			Alive:       true,
		})
	}
}

// Step advances every living fly one frame, decays the shake and reports a
// level clear once the debounce after the last kill has elapsed.
func (e *Engine) Step(now time.Time) StepResult {
	for i := range e.flies {
		f := &e.flies[i]
		if !f.Alive {
			continue
		}
		f.steer(e.rng)
		f.integrate()
		f.wrap(e.width, e.height)
	}
	e.shake *= shakeDecay

	var res StepResult
	if !e.clearArmed && len(e.flies) > 0 && e.AliveCount() == 0 {
		e.clearArmed = true
		e.clearDue = now.Add(levelClearDelay)
	}
	if e.clearArmed && !e.clearReported && !now.Before(e.clearDue) {
		e.clearReported = true
		res.LevelCleared = true
	}
	return res
}

// RegisterHit kills every living fly closer to (x, y) than halfExtent plus
// half its own size, leaving a splat for each. It reports whether at least
// one fly was hit.
func (e *Engine) RegisterHit(x, y, halfExtent float64) bool {
	hit := false
	for i := range e.flies {
		f := &e.flies[i]
		if !f.Alive {
			continue
		}
		if math.Hypot(f.X-x, f.Y-y) < halfExtent+f.Size/2 {
			f.Alive = false
			e.splats = append(e.splats, newSplat(f, e.rng))
			hit = true
		}
	}
	return hit
}

// Shake sets the screen shake to its peak.
func (e *Engine) Shake() { e.shake = shakePeak }

// Resize updates the viewport. Flies keep their positions and wrap against
// the new bounds on the next step.
func (e *Engine) Resize(width, height float64) {
	e.width, e.height = width, height
}

// Flies returns the current level's flies, dead ones included. The slice is
// owned by the engine and must not be modified.
func (e *Engine) Flies() []Fly { return e.flies }

// Splats returns the splats recorded this level, oldest first.
func (e *Engine) Splats() []Splat { return e.splats }

// ShakeMagnitude returns the current shake magnitude.
func (e *Engine) ShakeMagnitude() float64 { return e.shake }

// Viewport returns the current viewport size.
func (e *Engine) Viewport() (width, height float64) { return e.width, e.height }

// AliveCount returns the number of living flies.
func (e *Engine) AliveCount() int {
	n := 0
	for i := range e.flies {
		if e.flies[i].Alive {
			n++
		}
	}
	return n
}

// Buzzers appends the audio view of every fly to dst.
func (e *Engine) Buzzers(dst []audio.Buzzer) []audio.Buzzer {
	for i := range e.flies {
		f := &e.flies[i]
		dst = append(dst, audio.Buzzer{ID: f.ID, X: f.X, Alive: f.Alive})
	}
	return dst
}
