package level

import (
	"errors"
	"testing"
)

func TestConfigFor_Table(t *testing.T) {
	cases := []struct {
		level     int
		flies     int
		speed     float64
		size      float64
		scale     float64
		erratic   float64
		timerSecs int
	}{
		{1, 1, 2, 60, 0.5, 0, 10},
		{2, 2, 2, 45, 0.35, 0, 10},
		{3, 3, 2, 35, 0.25, 0.05, 10},
		{4, 3, 2.6, 30, 0.2, 0.05, 10},
		{5, 5, 5, 20, 0.15, 0.2, 20},
	}
	for _, tc := range cases {
		c, err := ConfigFor(tc.level)
		if err != nil {
			t.Fatalf("level %d: unexpected error %v", tc.level, err)
		}
		if c.FlyCount != tc.flies || c.FlySpeed != tc.speed || c.FlySize != tc.size ||
			c.SwatterSizeScale != tc.scale || c.Erraticness != tc.erratic || c.TimerSeconds != tc.timerSecs {
			t.Errorf("level %d: got %+v", tc.level, c)
		}
	}
	if Count() != 5 {
		t.Fatalf("expected 5 levels, got %d", Count())
	}
}

func TestConfigFor_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, 6, 100} {
		if _, err := ConfigFor(n); !errors.Is(err, ErrLevelOutOfRange) {
			t.Errorf("level %d: expected ErrLevelOutOfRange, got %v", n, err)
		}
	}
}

func TestMustConfig_PanicsOnLevelSix(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for level 6")
		}
	}()
	MustConfig(6)
}

func TestIsLast(t *testing.T) {
	if IsLast(4) {
		t.Error("level 4 should not be last")
	}
	if !IsLast(5) {
		t.Error("level 5 should be last")
	}
}

func TestSwatterHalfExtent(t *testing.T) {
	c := MustConfig(1)
	if got := c.SwatterHalfExtent(800); got != 200 {
		t.Fatalf("expected half extent 200, got %.2f", got)
	}
}
