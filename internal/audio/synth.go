package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSaw
	WaveNoise
)

// waveSample evaluates one period-normalised sample; phase is in [0, 1).
func waveSample(wave WaveType, phase float64, rng *rand.Rand) float64 {
	switch wave {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	}
	return 0
}

// sweep is an oscillator whose frequency glides exponentially from one
// value to another and then holds. It streams for total samples.
type sweep struct {
	wave     WaveType
	from, to float64
	glide    int
	total    int
	position int
	phase    float64
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewSweep creates an oscillator gliding from one frequency to another over
// glide, streaming for total.
func NewSweep(wave WaveType, from, to float64, glide, total time.Duration, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &sweep{
		wave:  wave,
		from:  from,
		to:    to,
		glide: rate.N(glide),
		total: rate.N(total),
		rate:  rate,
		rng:   rng,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		val := waveSample(s.wave, s.phase, s.rng)
		samples[i][0] = val
		samples[i][1] = val

		freq := expRamp(s.from, s.to, s.position, s.glide)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// expEnvelope multiplies a stream by a gain falling exponentially from
// `from` to `to` across length samples, then holding at `to`.
type expEnvelope struct {
	streamer beep.Streamer
	from, to float64
	length   int
	position int
}

// NewExpEnvelope shapes s with an exponential gain ramp over d.
func NewExpEnvelope(s beep.Streamer, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &expEnvelope{streamer: s, from: from, to: to, length: rate.N(d)}
}

func (e *expEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := expRamp(e.from, e.to, e.position, e.length)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *expEnvelope) Err() error { return e.streamer.Err() }

// expRamp interpolates exponentially from a to b; pos beyond length holds b.
func expRamp(a, b float64, pos, length int) float64 {
	if length <= 0 || pos >= length {
		return b
	}
	if a <= 0 || b <= 0 {
		return a + (b-a)*float64(pos)/float64(length)
	}
	return a * math.Pow(b/a, float64(pos)/float64(length))
}

// smoothed approaches its target with a first order lag, like an audio
// parameter driven by a "set target" automation.
type smoothed struct {
	value  float64
	target float64
	coeff  float64
}

func newSmoothed(initial float64, tau time.Duration, rate beep.SampleRate) smoothed {
	coeff := 1.0
	if samples := tau.Seconds() * float64(rate); samples > 0 {
		coeff = 1 - math.Exp(-1/samples)
	}
	return smoothed{value: initial, target: initial, coeff: coeff}
}

func (p *smoothed) next() float64 {
	p.value += (p.target - p.value) * p.coeff
	return p.value
}

// biquad is a mono RBJ cookbook high-pass section applied to both channels
// of an already-mono signal.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func newHighPass(cutoff, q float64, rate beep.SampleRate) *biquad {
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cosW := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a0 := 1 + alpha
	return &biquad{
		b0: (1 + cosW) / 2 / a0,
		b1: -(1 + cosW) / a0,
		b2: (1 + cosW) / 2 / a0,
		a1: -2 * cosW / a0,
		a2: (1 - alpha) / a0,
	}
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sound effect generators

// CreateHitSound layers a decaying noise crunch over a falling sine thud.
func CreateHitSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	noise := NewSweep(WaveNoise, 1, 1, 0, hitNoiseDuration, rate, rng)
	crunch := NewExpEnvelope(noise, hitNoiseGainStart, oneShotGainEnd, hitNoiseDuration, rate)

	thudOsc := NewSweep(WaveSine, hitThudFreqStart, hitThudFreqEnd, hitThudDuration, hitThudDuration, rate, rng)
	thud := NewExpEnvelope(thudOsc, hitThudGainStart, oneShotGainEnd, hitThudDuration, rate)

	return beep.Mix(crunch, thud)
}

// CreateMissSound generates a short triangle thump, lower and duller than a hit.
func CreateMissSound(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	osc := NewSweep(WaveTriangle, missFreqStart, missFreqEnd, missDuration, missDuration, rate, rng)
	return NewExpEnvelope(osc, missGainStart, oneShotGainEnd, missDuration, rate)
}
