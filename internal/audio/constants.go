package audio

import "time"

const (
	defaultSampleRate = 48000
	defaultBufferSize = 80 * time.Millisecond

	// masterAttenuation is the fixed gain of the master node.
	masterAttenuation = 0.3

	// Hit: noise crunch layered with a falling sine thud.
	hitNoiseDuration  = 100 * time.Millisecond
	hitNoiseGainStart = 0.5
	hitThudDuration   = 150 * time.Millisecond
	hitThudGainStart  = 0.8
	hitThudFreqStart  = 150.0
	hitThudFreqEnd    = 40.0

	// Miss: a dull triangle thump.
	missDuration  = 100 * time.Millisecond
	missGainStart = 0.5
	missFreqStart = 80.0
	missFreqEnd   = 20.0

	oneShotGainEnd = 0.01

	// Buzz voices.
	buzzBaseFreq       = 150.0
	buzzFreqSpread     = 50.0
	buzzWobbleDepth    = 20.0
	buzzWobbleRate     = 0.01 // radians per wall-clock millisecond
	buzzHighPassCutoff = 1000.0
	buzzHighPassQ      = 1.0
	buzzSustainGain    = 0.05
	buzzAttack         = 500 * time.Millisecond
	buzzRelease        = 100 * time.Millisecond
	buzzReleaseFloor   = 0.001
	buzzSmoothing      = 100 * time.Millisecond // time constant for pan and pitch changes
)
