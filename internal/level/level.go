// Package level holds the static per-level difficulty table.
package level

import (
	"errors"
	"fmt"
)

// ErrLevelOutOfRange is returned when a level number outside 1..Count() is requested.
var ErrLevelOutOfRange = errors.New("level out of range")

// Config is the immutable parameter set for one level.
type Config struct {
	FlyCount         int
	FlySpeed         float64 // pixels per frame
	FlySize          float64 // pixels
	SwatterSizeScale float64 // swatter edge as a fraction of viewport width
	Erraticness      float64 // 0 = straight lines
	TimerSeconds     int
}

// SwatterHalfExtent returns half the swatter edge for the given viewport width.
func (c Config) SwatterHalfExtent(viewportWidth float64) float64 {
	return viewportWidth * c.SwatterSizeScale / 2
}

var configs = [...]Config{
	{FlyCount: 1, FlySpeed: 2, FlySize: 60, SwatterSizeScale: 0.5, Erraticness: 0, TimerSeconds: 10},
	{FlyCount: 2, FlySpeed: 2, FlySize: 45, SwatterSizeScale: 0.35, Erraticness: 0, TimerSeconds: 10},
	{FlyCount: 3, FlySpeed: 2, FlySize: 35, SwatterSizeScale: 0.25, Erraticness: 0.05, TimerSeconds: 10},
	{FlyCount: 3, FlySpeed: 2.6, FlySize: 30, SwatterSizeScale: 0.2, Erraticness: 0.05, TimerSeconds: 10}, // 30% faster than 3
	{FlyCount: 5, FlySpeed: 5, FlySize: 20, SwatterSizeScale: 0.15, Erraticness: 0.2, TimerSeconds: 20},  // erratic swarm
}

// Count returns the number of configured levels.
func Count() int {
	return len(configs)
}

// IsLast reports whether n is the final configured level.
func IsLast(n int) bool {
	return n >= len(configs)
}

// ConfigFor returns the configuration of 1-based level n.
func ConfigFor(n int) (Config, error) {
	if n < 1 || n > len(configs) {
		return Config{}, fmt.Errorf("level %d (have 1..%d): %w", n, len(configs), ErrLevelOutOfRange)
	}
	return configs[n-1], nil
}

// MustConfig is ConfigFor for callers that already validated n.
// Asking for a level outside the table is a programming error.
func MustConfig(n int) Config {
	c, err := ConfigFor(n)
	if err != nil {
		panic(err)
	}
	return c
}
