// Command terminal plays Fly Squasher in a terminal. Every cell stands for an
// 8x16 patch of the table; click to swat.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Fly-Squasher/internal/audio"
	"github.com/Garsondee/Fly-Squasher/internal/game"
	"github.com/Garsondee/Fly-Squasher/internal/level"
)

const (
	cellW   = 8
	cellH   = 16
	hudRows = 1
)

var (
	tableStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(249, 234, 211))
	flyStyle    = tableStyle.Foreground(tcell.NewRGBColor(10, 10, 10)).Bold(true)
	swatStyle   = tableStyle.Foreground(tcell.NewRGBColor(26, 26, 26))
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	timerStyle  = hudStyle.Foreground(tcell.ColorRed).Bold(true)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(173, 255, 47)).Background(tcell.ColorBlack).Bold(true)
)

type terminalGame struct {
	screen tcell.Screen
	driver *game.Driver
	sound  *audio.Manager
	seed   int64

	cols, rows  int
	prevButtons tcell.ButtonMask
}

func newTerminalGame(seed int64, sound *audio.Manager) (*terminalGame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	tg := &terminalGame{screen: screen, sound: sound, seed: seed}
	tg.cols, tg.rows = screen.Size()
	w, h := tg.worldSize()
	tg.driver = game.NewDriver(game.DriverConfig{
		Width:           w,
		Height:          h,
		Rand:            rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		Sound:           sound,
		CountdownPeriod: time.Second,
	})
	return tg, nil
}

func (tg *terminalGame) worldSize() (w, h float64) {
	return float64(tg.cols * cellW), float64(max(tg.rows-hudRows, 1) * cellH)
}

// toWorld maps a cell to the centre of its patch of table.
func toWorld(col, row int) (x, y float64) {
	return float64(col*cellW) + cellW/2, float64((row-hudRows)*cellH) + cellH/2
}

func toCell(x, y float64) (col, row int) {
	return int(x) / cellW, int(y)/cellH + hudRows
}

func (tg *terminalGame) advance() {
	switch tg.driver.Session.State() {
	case game.StateStart, game.StateGameOver, game.StateVictory:
		tg.sound.EnsureInitialized()
		tg.sound.Resume()
	}
	tg.driver.Advance()
}

// handleEvent returns false when the player quits.
func (tg *terminalGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyEnter:
			tg.advance()
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				if tg.driver.Session.State() != game.StatePlaying {
					tg.advance()
				}
			case 'p':
				tg.driver.TogglePause()
			case 'c':
				if err := clipboard.WriteAll(game.SessionReport(tg.driver.Log, tg.seed)); err != nil {
					log.Printf("copy report: %v", err)
				}
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := toWorld(col, row)
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && tg.prevButtons&tcell.Button1 == 0
		tg.prevButtons = buttons
		if !pressed {
			tg.driver.Input.Move(x, y)
			break
		}
		if tg.driver.Session.State() == game.StatePlaying {
			tg.driver.Press(x, y, time.Now())
		} else {
			tg.advance()
		}
	case *tcell.EventResize:
		tg.cols, tg.rows = tg.screen.Size()
		tg.driver.Resize(tg.worldSize())
		tg.screen.Sync()
	}
	return true
}

func (tg *terminalGame) draw() {
	s := tg.screen
	s.Clear()
	for row := hudRows; row < tg.rows; row++ {
		for col := 0; col < tg.cols; col++ {
			s.SetContent(col, row, ' ', nil, tableStyle)
		}
	}

	for _, sp := range tg.driver.Engine.Splats() {
		col, row := toCell(sp.X, sp.Y)
		st := tableStyle.Foreground(tcell.NewRGBColor(int32(sp.Color.R), int32(sp.Color.G), int32(sp.Color.B)))
		tg.put(col, row, '*', st)
	}
	for _, f := range tg.driver.Engine.Flies() {
		if !f.Alive {
			continue
		}
		col, row := toCell(f.X, f.Y)
		tg.put(col, row, '@', flyStyle)
	}
	tg.drawSwatter()
	tg.drawHUD()
	s.Show()
}

func (tg *terminalGame) drawSwatter() {
	width, _ := tg.driver.Engine.Viewport()
	half := level.MustConfig(tg.driver.Session.Level()).SwatterHalfExtent(width)
	if tg.driver.Input.Slamming(time.Now()) {
		half *= 0.85
	}
	cx, cy := tg.driver.Input.Cursor()
	c0, r0 := toCell(cx-half, cy-half)
	c1, r1 := toCell(cx+half, cy+half)
	for col := c0; col <= c1; col++ {
		tg.put(col, r0, '-', swatStyle)
		tg.put(col, r1, '-', swatStyle)
	}
	for row := r0; row <= r1; row++ {
		tg.put(c0, row, '|', swatStyle)
		tg.put(c1, row, '|', swatStyle)
	}
}

func (tg *terminalGame) drawHUD() {
	for col := 0; col < tg.cols; col++ {
		tg.screen.SetContent(col, 0, ' ', nil, hudStyle)
	}
	d := tg.driver
	state := d.Session.State()
	tg.text(1, 0, fmt.Sprintf("LEVEL %d", d.Session.Level()), hudStyle)
	if state == game.StatePlaying || state == game.StatePaused {
		tg.text(tg.cols/2-2, 0, fmt.Sprintf("%ds", d.Countdown.Remaining()), timerStyle)
	}

	var banner string
	switch state {
	case game.StateStart:
		banner = "FLY SQUASHER - click or space to squash"
	case game.StatePaused:
		banner = "PAUSED - p to resume"
	case game.StateLevelClear:
		banner = "CLEARED! - click for the next room"
	case game.StateGameOver:
		banner = "FAILED. THE MAGGOTS HAVE WON. - click to retry"
	case game.StateVictory:
		banner = "VICTORY. YOU ARE THE MASTER SQUASHER. - click to retry"
	}
	if banner != "" {
		tg.text(max((tg.cols-len(banner))/2, 0), tg.rows/2, banner, bannerStyle)
	}
}

func (tg *terminalGame) put(col, row int, r rune, st tcell.Style) {
	if col < 0 || row < hudRows || col >= tg.cols || row >= tg.rows {
		return
	}
	tg.screen.SetContent(col, row, r, nil, st)
}

func (tg *terminalGame) text(col, row int, s string, st tcell.Style) {
	for i, r := range s {
		tg.screen.SetContent(col+i, row, r, nil, st)
	}
}

func (tg *terminalGame) run() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- tg.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !tg.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			tg.driver.Frame(now)
			tg.draw()
		}
	}
}

func (tg *terminalGame) cleanup() {
	tg.driver.Close()
	if err := tg.sound.Close(); err != nil {
		log.Printf("audio close: %v", err)
	}
	tg.screen.Fini()
}

func main() {
	var seed int64
	var mute bool
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.BoolVar(&mute, "mute", false, "disable audio")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := audio.LoadConfig()
	if mute {
		cfg.Enabled = false
	}
	sound := audio.NewManager(cfg, audio.NewSpeakerOutput(cfg.BufferSize))

	tg, err := newTerminalGame(seed, sound)
	if err != nil {
		log.Fatal(err)
	}
	tg.run()
	tg.cleanup()
}
