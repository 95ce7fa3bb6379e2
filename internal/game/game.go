// Package game implements Fly Squasher: the fly simulation, the session state
// machine, swat input and the Ebitengine frontend that draws it all.
package game

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Fly-Squasher/internal/audio"
)

// Options configures the windowed game.
type Options struct {
	Width, Height int
	Seed          int64
	Debug         bool
	StartLevel    int
	Sound         *audio.Manager // nil runs silent
}

// Game implements ebiten.Game on top of a Driver.
type Game struct {
	opts     Options
	driver   *Driver
	sound    *audio.Manager
	renderer *Renderer
	hud      *HUD

	width, height int
	prevKeys      map[ebiten.Key]bool
	prevCursor    [2]int
	touchIDs      []ebiten.TouchID
}

// ebitenHaptics vibrates through Ebitengine; unsupported platforms ignore it.
type ebitenHaptics struct{}

func (ebitenHaptics) Vibrate(d time.Duration) {
	ebiten.Vibrate(&ebiten.VibrateOptions{Duration: d, Magnitude: 1})
}

// New creates the game on its START screen.
func New(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.StartLevel <= 0 {
		opts.StartLevel = 1
	}
	rng := rand.New(rand.NewSource(opts.Seed)) // #nosec G404 -- gameplay randomness

	cfg := DriverConfig{
		Width:           float64(opts.Width),
		Height:          float64(opts.Height),
		Rand:            rng,
		Haptics:         ebitenHaptics{},
		CountdownPeriod: countdownPeriod,
	}
	if opts.Sound != nil {
		cfg.Sound = opts.Sound
	}

	g := &Game{
		opts:     opts,
		driver:   NewDriver(cfg),
		sound:    opts.Sound,
		renderer: NewRenderer(rand.New(rand.NewSource(opts.Seed + 1))), // #nosec G404 -- cosmetic
		width:    opts.Width,
		height:   opts.Height,
		prevKeys: map[ebiten.Key]bool{},
	}
	hud, err := NewHUD()
	if err != nil {
		log.Printf("hud disabled: %v", err)
	}
	g.hud = hud
	return g
}

// Driver exposes the underlying frame driver.
func (g *Game) Driver() *Driver { return g.driver }

func (g *Game) Update() error {
	now := time.Now()
	g.handleInput(now)
	g.driver.Frame(now)
	return nil
}

// justPressed reports a key going down this frame, tracked the same way for
// every key the game listens to.
func (g *Game) justPressed(keys map[ebiten.Key]bool, k ebiten.Key) bool {
	keys[k] = ebiten.IsKeyPressed(k)
	return keys[k] && !g.prevKeys[k]
}

func (g *Game) handleInput(now time.Time) {
	currentKeys := map[ebiten.Key]bool{}
	defer func() { g.prevKeys = currentKeys }()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(g.touchIDs[0])
		x, y = float64(tx), float64(ty)
		pressed = true
	}
	if pressed || mx != g.prevCursor[0] || my != g.prevCursor[1] {
		g.driver.Input.Move(x, y)
	}
	g.prevCursor = [2]int{mx, my}

	copyKey := g.justPressed(currentKeys, ebiten.KeyC)
	pauseKey := g.justPressed(currentKeys, ebiten.KeyP)
	escKey := g.justPressed(currentKeys, ebiten.KeyEscape)
	space := g.justPressed(currentKeys, ebiten.KeySpace)
	enter := g.justPressed(currentKeys, ebiten.KeyEnter)

	// C: copy the session report.
	if copyKey {
		if err := setClipboardText(SessionReport(g.driver.Log, g.opts.Seed)); err != nil {
			log.Printf("copy report: %v", err)
		}
	}

	// P / Esc: pause toggle.
	if pauseKey || escKey {
		g.driver.TogglePause()
		return
	}

	if g.driver.Session.State() == StatePlaying {
		if pressed {
			g.driver.Press(x, y, now)
		}
		return
	}
	if pressed || space || enter {
		g.advance()
	}
}

// advance acts on the overlay button. Starting a run unlocks audio the
// first time, since output may only begin after a user gesture.
func (g *Game) advance() {
	state := g.driver.Session.State()
	if state == StateStart || state == StateGameOver || state == StateVictory {
		if g.sound != nil {
			g.sound.EnsureInitialized()
			g.sound.Resume()
		}
		if g.opts.StartLevel > 1 && state == StateStart {
			g.driver.Session.StartAt(g.opts.StartLevel)
			return
		}
	}
	g.driver.Advance()
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	g.renderer.Draw(screen, g.driver.View(now))
	if g.hud != nil {
		g.hud.Draw(screen, g.driver)
	}
	if g.opts.Debug {
		drawEventFeed(screen, g.driver.Log)
	}
}

// Layout tracks the window size so the table always fills it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.driver.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
}

// Report returns the session report text.
func (g *Game) Report() string {
	return SessionReport(g.driver.Log, g.opts.Seed)
}

// Close stops the countdown and audio.
func (g *Game) Close() {
	g.driver.Close()
	if g.sound != nil {
		if err := g.sound.Close(); err != nil {
			log.Printf("audio close: %v", err)
		}
	}
}
