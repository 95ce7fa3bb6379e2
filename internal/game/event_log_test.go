package game

import (
	"strings"
	"testing"
)

func sampleLog() *EventLog {
	el := NewEventLog()
	el.Add(1, 1, CatSession, "transition", "START -> PLAYING", 0)
	el.Add(1, 1, CatLevel, "init", "1 flies, 10s", 1)
	el.Add(20, 1, CatInput, "swat", "(10,10)", 0)
	el.Add(20, 1, CatInput, "miss", "(10,10)", 0)
	el.Add(40, 1, CatInput, "swat", "(400,300)", 0)
	el.Add(40, 1, CatInput, "hit", "(400,300)", 1)
	el.Add(40, 1, CatFly, "killed", "1 down, 0 left", 1)
	el.Add(72, 1, CatLevel, "cleared", "0.5s", 0.53)
	el.Add(72, 1, CatSession, "transition", "PLAYING -> LEVEL_CLEAR", 0)
	el.Add(80, 2, CatSession, "transition", "LEVEL_CLEAR -> PLAYING", 0)
	el.Add(90, 2, CatInput, "swat", "(1,1)", 0)
	el.Add(90, 2, CatInput, "hit", "(1,1)", 2)
	el.Add(90, 2, CatFly, "killed", "2 down, 0 left", 2)
	el.Add(700, 2, CatTimer, "expired", "0 flies left", 0)
	el.Add(700, 2, CatSession, "transition", "PLAYING -> GAME_OVER", 0)
	return el
}

func TestEventLog_FilterAndCount(t *testing.T) {
	el := sampleLog()
	if got := len(el.Filter(CatInput, "")); got != 6 {
		t.Fatalf("expected 6 input entries, got %d", got)
	}
	if got := el.CountCategory(CatInput, "swat"); got != 3 {
		t.Fatalf("expected 3 swats, got %d", got)
	}
	if got := el.CountCategory("", "transition"); got != 4 {
		t.Fatalf("expected 4 transitions, got %d", got)
	}
	if got := len(el.FilterLevel(2)); got != 6 {
		t.Fatalf("expected 6 level-2 entries, got %d", got)
	}
	if !el.HasEntry(CatTimer, "expired", "0 flies") {
		t.Fatal("expected timer entry")
	}
	if el.HasEntry(CatTimer, "expired", "3 flies") {
		t.Fatal("substring match should fail")
	}
}

func TestEventLog_LastOfAndTail(t *testing.T) {
	el := sampleLog()
	e, ok := el.LastOf(CatInput, "hit")
	if !ok || e.Frame != 90 || e.NumVal != 2 {
		t.Fatalf("unexpected last hit %+v ok=%v", e, ok)
	}
	if _, ok := el.LastOf(CatAudio, ""); ok {
		t.Fatal("found an audio entry in a log without one")
	}

	tail := el.Tail(2)
	if len(tail) != 2 || tail[1].Key != "transition" || tail[0].Key != "expired" {
		t.Fatalf("unexpected tail %+v", tail)
	}
	if got := len(el.Tail(1000)); got != len(el.Entries()) {
		t.Fatalf("oversized tail returned %d entries", got)
	}
}

func TestEventLogEntry_String(t *testing.T) {
	e := EventLogEntry{Frame: 42, Level: 3, Category: CatInput, Key: "hit", Value: "(1,2)"}
	got := e.String()
	if !strings.HasPrefix(got, "[F=00042] L3 input") || !strings.HasSuffix(got, "(1,2)") {
		t.Fatalf("unexpected format %q", got)
	}
	if lines := strings.Count(sampleLog().Format(), "\n"); lines != 15 {
		t.Fatalf("expected 15 formatted lines, got %d", lines)
	}
}

func TestEventLog_Stats(t *testing.T) {
	st := sampleLog().Stats()
	if st.Swats != 3 || st.Hits != 2 || st.Misses != 1 {
		t.Fatalf("unexpected swat counts %+v", st)
	}
	if st.Kills != 3 {
		t.Fatalf("expected 3 kills, got %d", st.Kills)
	}
	if st.LevelsCleared != 1 || st.ClearTimes[1] != 0.53 {
		t.Fatalf("unexpected clears %+v", st)
	}
	if st.GameOvers != 1 || st.Victory {
		t.Fatalf("unexpected outcome %+v", st)
	}
	if acc := st.Accuracy(); acc < 0.66 || acc > 0.67 {
		t.Fatalf("expected 2/3 accuracy, got %.3f", acc)
	}
	if (SessionStats{}).Accuracy() != 0 {
		t.Fatal("accuracy with no swats should be 0")
	}
}

func TestSessionReport(t *testing.T) {
	report := SessionReport(sampleLog(), 1234)
	for _, want := range []string{
		"seed=1234",
		"frames=700",
		"swats=3 hits=2 misses=1 kills=3 accuracy=67%",
		"levels_cleared=1 game_overs=1 victory=false",
		"level 1 cleared in 0.5s",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "level 2 cleared") {
		t.Errorf("report invented a level 2 clear:\n%s", report)
	}
	if empty := SessionReport(NewEventLog(), 0); !strings.Contains(empty, "frames=0 events=0") {
		t.Errorf("unexpected empty report:\n%s", empty)
	}
}
