package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// buzzVoice is the continuous sound of one fly:
// sawtooth -> high-pass -> gain envelope -> stereo pan.
// All fields are guarded by the owning Manager's mutex.
type buzzVoice struct {
	id   int
	base float64
	rate beep.SampleRate

	phase float64
	freq  smoothed
	pan   smoothed
	hp    *biquad

	gain          float64
	attackStep    float64
	releasing     bool
	releaseFrom   float64
	releasePos    int
	releaseLength int
	stopped       bool

	panner *effects.Pan
}

func newBuzzVoice(id int, base float64, rate beep.SampleRate) *buzzVoice {
	v := &buzzVoice{
		id:         id,
		base:       base,
		rate:       rate,
		freq:       newSmoothed(base, buzzSmoothing, rate),
		pan:        newSmoothed(0, buzzSmoothing, rate),
		hp:         newHighPass(buzzHighPassCutoff, buzzHighPassQ, rate),
		attackStep: buzzSustainGain / float64(max(1, rate.N(buzzAttack))),
	}
	v.panner = &effects.Pan{Streamer: beep.StreamerFunc(v.core), Pan: 0}
	return v
}

// setTargets steers pan and pitch; both glide with the smoothing time constant.
func (v *buzzVoice) setTargets(pan, freq float64) {
	v.pan.target = clamp(pan, -1, 1)
	v.freq.target = freq
}

// release fades the voice out over d and stops it at the same deadline.
func (v *buzzVoice) release(d time.Duration) {
	if v.releasing || v.stopped {
		return
	}
	v.releasing = true
	v.releaseFrom = math.Max(v.gain, buzzReleaseFloor)
	v.releaseLength = v.rate.N(d)
	v.releasePos = 0
}

// stop silences the voice immediately.
func (v *buzzVoice) stop() {
	v.stopped = true
	v.gain = 0
}

func (v *buzzVoice) done() bool {
	return v.stopped
}

func (v *buzzVoice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.stopped {
		return 0, false
	}
	v.panner.Pan = v.pan.value
	return v.panner.Stream(samples)
}

func (v *buzzVoice) Err() error { return nil }

// core renders the mono, filtered and enveloped oscillator.
func (v *buzzVoice) core(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.stopped {
			return i, i > 0
		}
		v.advanceGain()

		val := v.hp.process(waveSample(WaveSaw, v.phase, nil)) * v.gain
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq.next() / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.pan.next()
	}
	return len(samples), true
}

func (v *buzzVoice) advanceGain() {
	switch {
	case v.releasing:
		if v.releasePos >= v.releaseLength {
			v.stop()
			return
		}
		v.gain = expRamp(v.releaseFrom, buzzReleaseFloor, v.releasePos, v.releaseLength)
		v.releasePos++
	case v.gain < buzzSustainGain:
		v.gain = math.Min(buzzSustainGain, v.gain+v.attackStep)
	}
}
