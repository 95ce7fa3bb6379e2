package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// Output is a device backend that pulls samples from the graph root.
// Start is called once, outside the manager's lock.
type Output interface {
	Start(src beep.Streamer, rate beep.SampleRate) error
	Close() error
}

// lockedStreamer serialises device reads with graph mutations.
type lockedStreamer struct {
	mu *sync.Mutex
	s  beep.Streamer
}

func (l *lockedStreamer) Stream(samples [][2]float64) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Stream(samples)
}

func (l *lockedStreamer) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Err()
}

const (
	pcm16MaxValue = 32767
	pcm16MinValue = -32768
)

// pcmReader adapts a beep stream to the signed 16-bit little endian stereo
// byte stream expected by io.Reader based players.
type pcmReader struct {
	src beep.Streamer
	buf [][2]float64
}

func (r *pcmReader) Read(p []byte) (int, error) {
	// Ensure we generate whole stereo frames (4 bytes per frame).
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	n, _ := r.src.Stream(buf)
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}
	for i := 0; i < frames; i++ {
		l := toPCM16(buf[i][0])
		rr := toPCM16(buf[i][1])
		p[i*4] = byte(l)
		p[i*4+1] = byte(l >> 8)
		p[i*4+2] = byte(rr)
		p[i*4+3] = byte(rr >> 8)
	}
	return frames * 4, nil
}

func toPCM16(v float64) int16 {
	s := v * pcm16MaxValue
	if s > pcm16MaxValue {
		s = pcm16MaxValue
	} else if s < pcm16MinValue {
		s = pcm16MinValue
	}
	return int16(s)
}
