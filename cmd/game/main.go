package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Fly-Squasher/internal/audio"
	"github.com/Garsondee/Fly-Squasher/internal/game"
)

func main() {
	var width, height, startLevel int
	var fullscreen, debug, mute bool
	var seed int64
	var volume float64

	flag.IntVar(&width, "width", 1280, "window width")
	flag.IntVar(&height, "height", 720, "window height")
	flag.BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	flag.BoolVar(&debug, "debug", false, "show the event feed and log a session report on exit")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.BoolVar(&mute, "mute", false, "disable audio")
	flag.Float64Var(&volume, "volume", -1, "master volume 0-100 (overrides FLYSWAT_MASTER_VOLUME)")
	flag.IntVar(&startLevel, "level", 1, "level to start on")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := audio.LoadConfig()
	if mute {
		cfg.Enabled = false
	}
	if volume >= 0 {
		cfg.MasterVolume = min(volume, 100) / 100
	}
	sound := audio.NewManager(cfg, audio.NewEbitenOutput(cfg.BufferSize))

	g := game.New(game.Options{
		Width:      width,
		Height:     height,
		Seed:       seed,
		Debug:      debug,
		StartLevel: startLevel,
		Sound:      sound,
	})
	defer g.Close()

	ebiten.SetWindowTitle("Fly Squasher")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	if debug {
		log.Print("\n" + g.Report())
	}
}
