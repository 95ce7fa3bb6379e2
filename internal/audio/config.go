package audio

import (
	"os"
	"strconv"
	"time"
)

// Config controls the audio graph and its output backend.
type Config struct {
	Enabled      bool
	MasterVolume float64 // user volume 0..1, applied on top of the fixed master attenuation
	SampleRate   int
	BufferSize   time.Duration
}

// DefaultConfig returns the built-in audio settings.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 1.0,
		SampleRate:   defaultSampleRate,
		BufferSize:   defaultBufferSize,
	}
}

// LoadConfig returns DefaultConfig with FLYSWAT_* environment overrides applied.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("FLYSWAT_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100.
	if volume := os.Getenv("FLYSWAT_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp(float64(val)/100.0, 0, 1)
		}
	}

	if rate := os.Getenv("FLYSWAT_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val >= 8000 && val <= 192000 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
