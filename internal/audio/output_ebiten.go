package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenOutput plays the graph through an Ebitengine audio player.
// Ebitengine allows a single audio context per process; an existing one is
// reused when its sample rate matches.
type EbitenOutput struct {
	bufferSize time.Duration
	player     *ebaudio.Player
}

// NewEbitenOutput creates a backend with the given player buffer latency.
func NewEbitenOutput(bufferSize time.Duration) *EbitenOutput {
	return &EbitenOutput{bufferSize: bufferSize}
}

func (o *EbitenOutput) Start(src beep.Streamer, rate beep.SampleRate) error {
	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(int(rate))
	} else if ctx.SampleRate() != int(rate) {
		return fmt.Errorf("ebiten audio context runs at %d Hz, graph wants %d Hz", ctx.SampleRate(), int(rate))
	}
	player, err := ctx.NewPlayer(&pcmReader{src: src})
	if err != nil {
		return fmt.Errorf("creating ebiten audio player: %w", err)
	}
	if o.bufferSize > 0 {
		player.SetBufferSize(o.bufferSize)
	}
	player.Play()
	o.player = player
	return nil
}

func (o *EbitenOutput) Close() error {
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}
