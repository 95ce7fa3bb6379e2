package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	hudTimerColor  = rgba(220, 38, 38, 1)
	hudLevelColor  = rgba(24, 24, 27, 0.5)
	overlayDim     = rgba(10, 10, 10, 0.78)
	overlayTitle   = rgba(255, 255, 255, 1)
	overlaySub     = rgba(212, 212, 216, 1)
	overlayPrompt  = rgba(173, 255, 47, 1)
	overlayDanger  = rgba(239, 68, 68, 1)
	overlayVictory = rgba(250, 204, 21, 1)
)

// overlayCopy is the text shown on a non-playing screen.
type overlayCopy struct {
	title      string
	lines      []string
	prompt     string
	titleColor color.Color
}

func overlayFor(s State) (overlayCopy, bool) {
	switch s {
	case StateStart:
		return overlayCopy{"FLY SQUASHER", []string{"CLEANSE THE INFESTATION.", "BRIGHT. VISCERAL. DEADLY."}, "[ SQUASH ]", overlayTitle}, true
	case StatePaused:
		return overlayCopy{"PAUSED", []string{"THE FLIES ARE WAITING."}, "[ RESUME ]", overlayTitle}, true
	case StateLevelClear:
		return overlayCopy{"CLEARED!", []string{"THE TABLE IS CLEAN... FOR NOW."}, "[ NEXT ROOM ]", overlayPrompt}, true
	case StateGameOver:
		return overlayCopy{"FAILED", []string{"THE MAGGOTS HAVE WON."}, "[ RETRY ]", overlayDanger}, true
	case StateVictory:
		return overlayCopy{"VICTORY", []string{"YOU ARE THE MASTER SQUASHER."}, "[ RETRY ]", overlayVictory}, true
	}
	return overlayCopy{}, false
}

// HUD draws the timer, the level label and the screen overlays.
type HUD struct {
	timerFace  *text.GoTextFace
	levelFace  *text.GoTextFace
	titleFace  *text.GoTextFace
	bodyFace   *text.GoTextFace
	promptFace *text.GoTextFace
}

// NewHUD loads the Go fonts.
func NewHUD() (*HUD, error) {
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	return &HUD{
		timerFace:  &text.GoTextFace{Source: bold, Size: 64},
		levelFace:  &text.GoTextFace{Source: bold, Size: 24},
		titleFace:  &text.GoTextFace{Source: bold, Size: 72},
		bodyFace:   &text.GoTextFace{Source: regular, Size: 22},
		promptFace: &text.GoTextFace{Source: bold, Size: 28},
	}, nil
}

// Draw renders the HUD for the driver's current state.
func (h *HUD) Draw(screen *ebiten.Image, d *Driver) {
	w, hgt := screen.Bounds().Dx(), screen.Bounds().Dy()
	state := d.Session.State()

	if state == StatePlaying || state == StatePaused {
		h.drawText(screen, fmt.Sprintf("%ds", d.Countdown.Remaining()), h.timerFace, float64(w)/2, 24, text.AlignCenter, hudTimerColor)
		h.drawText(screen, fmt.Sprintf("LEVEL %d", d.Session.Level()), h.levelFace, 24, 24, text.AlignStart, hudLevelColor)
	}

	oc, ok := overlayFor(state)
	if !ok {
		return
	}
	vector.FillRect(screen, 0, 0, float32(w), float32(hgt), overlayDim, false)
	cx := float64(w) / 2
	y := float64(hgt)/2 - 140
	h.drawText(screen, oc.title, h.titleFace, cx, y, text.AlignCenter, oc.titleColor)
	y += 110
	for _, line := range oc.lines {
		h.drawText(screen, line, h.bodyFace, cx, y, text.AlignCenter, overlaySub)
		y += 34
	}
	if state == StateLevelClear {
		h.drawText(screen, fmt.Sprintf("LEVEL %d DONE", d.Session.Level()), h.bodyFace, cx, y, text.AlignCenter, overlaySub)
		y += 34
	}
	y += 30
	h.drawText(screen, oc.prompt, h.promptFace, cx, y, text.AlignCenter, overlayPrompt)
	h.drawText(screen, "click, tap or press space", h.bodyFace, cx, y+44, text.AlignCenter, overlaySub)
}

func (h *HUD) drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
