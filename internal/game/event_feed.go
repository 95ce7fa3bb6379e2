package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 340
	feedMaxEntries = 40
	feedLineHeight = 14
	feedRecent     = 3 // how many latest entries to highlight
)

// feedDotColor returns the category marker colour.
func feedDotColor(category string) color.RGBA {
	switch category {
	case CatInput:
		return color.RGBA{R: 173, G: 255, B: 47, A: 255}
	case CatFly:
		return color.RGBA{R: 255, G: 20, B: 147, A: 255}
	case CatTimer:
		return color.RGBA{R: 220, G: 38, B: 38, A: 255}
	case CatLevel, CatSession:
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	}
	return color.RGBA{R: 150, G: 150, B: 150, A: 255}
}

// drawEventFeed renders the newest events in a panel on the right edge,
// with FPS/TPS in the title bar.
func drawEventFeed(screen *ebiten.Image, el *EventLog) {
	w, panelH := screen.Bounds().Dx(), screen.Bounds().Dy()
	panelX := w - feedPanelWidth
	if panelX < 0 {
		panelX = 0
	}

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("EVENTS  fps %.0f tps %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()), panelX+8, 0)

	maxVisible := (panelH - 24) / feedLineHeight
	if maxVisible > feedMaxEntries {
		maxVisible = feedMaxEntries
	}
	if maxVisible <= 0 {
		return
	}
	visible := el.Tail(maxVisible)

	y := 20
	for i, e := range visible {
		if i >= len(visible)-feedRecent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, feedDotColor(e.Category), false)
		line := fmt.Sprintf("%5d L%d %s/%s %s", e.Frame, e.Level, e.Category, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-2)
		y += feedLineHeight
	}
}
