package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerOutput plays the graph through the beep speaker. It owns the
// process-wide speaker, so it must not be combined with EbitenOutput.
type SpeakerOutput struct {
	bufferSize time.Duration
	started    bool
}

// NewSpeakerOutput creates a backend with the given device buffer length.
func NewSpeakerOutput(bufferSize time.Duration) *SpeakerOutput {
	return &SpeakerOutput{bufferSize: bufferSize}
}

func (o *SpeakerOutput) Start(src beep.Streamer, rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(o.bufferSize)); err != nil {
		return fmt.Errorf("initialising speaker: %w", err)
	}
	speaker.Play(src)
	o.started = true
	return nil
}

func (o *SpeakerOutput) Close() error {
	if !o.started {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	o.started = false
	return nil
}
