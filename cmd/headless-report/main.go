package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"

	"github.com/Garsondee/Fly-Squasher/internal/game"
	"github.com/Garsondee/Fly-Squasher/internal/level"
)

// botConfig describes a scripted player.
type botConfig struct {
	reaction  int     // frames to wait after a level starts
	swatEvery int     // frames between swats
	aimError  float64 // standard deviation of the aim offset, pixels
}

type runStats struct {
	runIndex int
	seed     int64
	frames   int

	finalLevel    int
	victory       bool
	gameOverLevel int // 0 when the run never failed

	swats, hits, misses, kills int
	clearTimes                 map[int]float64
}

func (rs runStats) accuracy() float64 {
	if rs.swats == 0 {
		return 0
	}
	return float64(rs.hits) / float64(rs.swats)
}

func main() {
	var runs int
	var maxFrames int
	var seedBase int64
	var seedStep int64
	var bot botConfig

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&maxFrames, "frames", 20000, "frame limit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&bot.reaction, "reaction", 20, "bot reaction time in frames")
	flag.IntVar(&bot.swatEvery, "swat-every", 15, "frames between bot swats")
	flag.Float64Var(&bot.aimError, "aim-error", 25, "bot aim error (std dev, px)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxFrames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	if bot.swatEvery <= 0 {
		fmt.Println("error: -swat-every must be > 0")
		return
	}

	fmt.Printf("=== Headless Squash Report ===\n")
	fmt.Printf("runs=%d frames=%d seed_base=%d seed_step=%d reaction=%d swat_every=%d aim_error=%.1f\n\n",
		runs, maxFrames, seedBase, seedStep, bot.reaction, bot.swatEvery, bot.aimError)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runBot(i+1, seed, bot, maxFrames)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runBot plays one run with a scripted player that swats at the nearest fly
// with gaussian aim error, advancing through clear screens until it wins,
// loses or hits the frame limit.
func runBot(runIndex int, seed int64, bot botConfig, maxFrames int) runStats {
	ts := game.NewTestSim(game.WithSeed(seed), game.WithStarted())
	defer ts.Close()
	aim := rand.New(rand.NewSource(seed + 7919)) // #nosec G404 -- bot aim

	cx, cy := float64(ts.Width)/2, float64(ts.Height)/2
	wait := bot.reaction
	frames := 0

loop:
	for ; frames < maxFrames; frames++ {
		switch ts.State() {
		case game.StateLevelClear:
			ts.Driver.Advance()
			wait = bot.reaction
		case game.StateGameOver, game.StateVictory:
			break loop
		case game.StatePlaying:
			if wait > 0 {
				wait--
				break
			}
			if f, ok := ts.NearestFly(cx, cy); ok {
				cx = f.X + aim.NormFloat64()*bot.aimError
				cy = f.Y + aim.NormFloat64()*bot.aimError
				ts.Swat(cx, cy)
				wait = bot.swatEvery
			}
		}
		ts.Step()
	}

	st := ts.Log.Stats()
	rs := runStats{
		runIndex:   runIndex,
		seed:       seed,
		frames:     frames,
		finalLevel: ts.Level(),
		victory:    ts.State() == game.StateVictory,
		swats:      st.Swats,
		hits:       st.Hits,
		misses:     st.Misses,
		kills:      st.Kills,
		clearTimes: st.ClearTimes,
	}
	if ts.State() == game.StateGameOver {
		rs.gameOverLevel = ts.Level()
	}
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	outcome := "timeout"
	switch {
	case rs.victory:
		outcome = "victory"
	case rs.gameOverLevel > 0:
		outcome = fmt.Sprintf("game_over@L%d", rs.gameOverLevel)
	}
	fmt.Printf("outcome=%s final_level=%d frames=%d\n", outcome, rs.finalLevel, rs.frames)
	fmt.Printf("swats=%d hits=%d misses=%d kills=%d accuracy=%.0f%%\n",
		rs.swats, rs.hits, rs.misses, rs.kills, rs.accuracy()*100)
	fmt.Printf("clear_times: %s\n\n", formatClearTimes(rs.clearTimes))
}

func printAggregate(all []runStats) {
	victories := 0
	failsByLevel := map[int]int{}
	totalSwats, totalHits, totalKills := 0, 0, 0
	clearSums := map[int]float64{}
	clearCounts := map[int]int{}

	for _, rs := range all {
		if rs.victory {
			victories++
		}
		if rs.gameOverLevel > 0 {
			failsByLevel[rs.gameOverLevel]++
		}
		totalSwats += rs.swats
		totalHits += rs.hits
		totalKills += rs.kills
		for lvl, secs := range rs.clearTimes {
			clearSums[lvl] += secs
			clearCounts[lvl]++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d victories=%d win_rate=%.0f%%\n", len(all), victories, pct(victories, len(all)))
	fmt.Printf("avg_per_run: swats=%.1f hits=%.1f kills=%.1f accuracy=%.0f%%\n",
		avg(totalSwats, len(all)), avg(totalHits, len(all)), avg(totalKills, len(all)), pct(totalHits, totalSwats))

	levels := make([]int, 0, len(failsByLevel))
	for lvl := range failsByLevel {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	for _, lvl := range levels {
		fmt.Printf("  failed on level %d: %d runs\n", lvl, failsByLevel[lvl])
	}
	for lvl := 1; lvl <= level.Count(); lvl++ {
		if n := clearCounts[lvl]; n > 0 {
			fmt.Printf("  level %d avg clear: %.1fs over %d runs\n", lvl, clearSums[lvl]/float64(n), n)
		}
	}
}

func formatClearTimes(times map[int]float64) string {
	if len(times) == 0 {
		return "none"
	}
	out := ""
	for lvl := 1; lvl <= level.Count(); lvl++ {
		if secs, ok := times[lvl]; ok {
			if out != "" {
				out += " "
			}
			out += fmt.Sprintf("L%d=%.1fs", lvl, secs)
		}
	}
	return out
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
