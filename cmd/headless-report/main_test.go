package main

import (
	"strings"
	"testing"
)

func TestRunBot_PerfectAimWins(t *testing.T) {
	rs := runBot(1, 42, botConfig{reaction: 5, swatEvery: 10, aimError: 0}, 20000)
	if !rs.victory {
		t.Fatalf("expected a perfect bot to win, ended on level %d after %d frames (game over level %d)",
			rs.finalLevel, rs.frames, rs.gameOverLevel)
	}
	if rs.misses != 0 {
		t.Fatalf("perfect aim should never miss, got %d misses", rs.misses)
	}
	if rs.kills != 1+2+3+3+5 {
		t.Fatalf("expected every fly killed once, got %d kills", rs.kills)
	}
	if len(rs.clearTimes) != 5 {
		t.Fatalf("expected five clear times, got %v", rs.clearTimes)
	}
}

func TestRunBot_IdleBotTimesOutOnLevelOne(t *testing.T) {
	rs := runBot(1, 7, botConfig{reaction: 1 << 30, swatEvery: 1}, 5000)
	if rs.victory || rs.gameOverLevel != 1 {
		t.Fatalf("expected game over on level 1, got victory=%v gameOverLevel=%d", rs.victory, rs.gameOverLevel)
	}
	if rs.swats != 0 {
		t.Fatalf("idle bot swatted %d times", rs.swats)
	}
	// 10s at 60 frames per second, plus the frame that notices.
	if rs.frames < 600 || rs.frames > 605 {
		t.Fatalf("expected timeout near frame 600, got %d", rs.frames)
	}
}

func TestRunStatsAccuracy(t *testing.T) {
	if got := (runStats{}).accuracy(); got != 0 {
		t.Fatalf("no swats should give 0 accuracy, got %v", got)
	}
	if got := (runStats{swats: 4, hits: 3}).accuracy(); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestFormatClearTimes(t *testing.T) {
	if got := formatClearTimes(nil); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
	got := formatClearTimes(map[int]float64{2: 3.25, 1: 1.5})
	if !strings.HasPrefix(got, "L1=1.5s") || !strings.Contains(got, "L2=3.2s") && !strings.Contains(got, "L2=3.3s") {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestPct(t *testing.T) {
	if pct(1, 0) != 0 {
		t.Fatal("pct with zero denominator should be 0")
	}
	if pct(1, 4) != 25 {
		t.Fatalf("expected 25, got %v", pct(1, 4))
	}
}
