package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Fly-Squasher/internal/level"
)

// SessionStats summarises a session's event log.
type SessionStats struct {
	Swats, Hits, Misses int
	Kills               int
	LevelsCleared       int
	GameOvers           int
	Victory             bool
	ClearTimes          map[int]float64 // level -> seconds, last clear wins
}

// Accuracy is the fraction of swats that hit, or 0 with no swats.
func (s SessionStats) Accuracy() float64 {
	if s.Swats == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Swats)
}

// Stats derives session statistics from the log.
func (el *EventLog) Stats() SessionStats {
	st := SessionStats{ClearTimes: map[int]float64{}}
	for _, e := range el.entries {
		switch {
		case e.Category == CatInput && e.Key == "swat":
			st.Swats++
		case e.Category == CatInput && e.Key == "hit":
			st.Hits++
		case e.Category == CatInput && e.Key == "miss":
			st.Misses++
		case e.Category == CatFly && e.Key == "killed":
			st.Kills += int(e.NumVal)
		case e.Category == CatLevel && e.Key == "cleared":
			st.LevelsCleared++
			st.ClearTimes[e.Level] = e.NumVal
		case e.Category == CatSession && e.Key == "transition":
			if strings.HasSuffix(e.Value, StateGameOver.String()) {
				st.GameOvers++
			}
			if strings.HasSuffix(e.Value, StateVictory.String()) {
				st.Victory = true
			}
		}
	}
	return st
}

// SessionReport renders the log's statistics as plain text.
func SessionReport(el *EventLog, seed int64) string {
	st := el.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "--- Fly Squasher session report ---\n")
	fmt.Fprintf(&b, "seed=%d frames=%d events=%d\n", seed, lastFrame(el), len(el.entries))
	fmt.Fprintf(&b, "swats=%d hits=%d misses=%d kills=%d accuracy=%.0f%%\n",
		st.Swats, st.Hits, st.Misses, st.Kills, st.Accuracy()*100)
	fmt.Fprintf(&b, "levels_cleared=%d game_overs=%d victory=%v\n", st.LevelsCleared, st.GameOvers, st.Victory)
	for lvl := 1; lvl <= level.Count(); lvl++ {
		if secs, ok := st.ClearTimes[lvl]; ok {
			fmt.Fprintf(&b, "  level %d cleared in %.1fs\n", lvl, secs)
		}
	}
	return b.String()
}

func lastFrame(el *EventLog) int {
	if len(el.entries) == 0 {
		return 0
	}
	return el.entries[len(el.entries)-1].Frame
}
