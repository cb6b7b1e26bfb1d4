package main

import (
	"flag"
	"fmt"
	"math"
	"strings"

	"github.com/Draymode/Veil-Runner/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	outcome  string // "extracted", "down", "timeout"
	endTick  int
	enemies  int
	killed   int
	playerHP int

	maxDetection float64

	firstInvestigateTick int
	firstChaseTick       int

	stateChanges int
	gunshots     int
	playerHits   int
	pickups      int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 7200, "tick budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "level seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "ghost", "scenario name (ghost, loud)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "ghost" && scenario != "loud" {
		fmt.Printf("error: unsupported scenario %q (supported: ghost, loud)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Stealth Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, ticks, scenario == "loud")
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runScenario drives a scripted player straight toward the exit on a
// generated level: sneaking for the ghost scenario, sprinting for loud.
func runScenario(runIndex int, seed int64, ticks int, loud bool) runStats {
	lv := game.GenerateLevel(seed, 30, 17)
	ts := game.NewTestSim(game.WithLevel(lv))

	maxDetection := 0.0
	script := func(int) game.InputState {
		w := ts.World
		if w.DetectionLevel > maxDetection {
			maxDetection = w.DetectionLevel
		}
		ex := float64(lv.ExitCol) + 0.5
		ey := float64(lv.ExitRow) + 0.5
		var in game.InputState
		in.Left = w.Player.X > ex+0.3
		in.Right = w.Player.X < ex-0.3
		in.Up = w.Player.Y > ey+0.3
		in.Down = w.Player.Y < ey-0.3
		in.Sneak = !loud
		in.Sprint = loud
		in.Facing = math.Atan2(ey-w.Player.Y, ex-w.Player.X)
		return in
	}

	for i := 0; i < ticks; i++ {
		ts.RunScript(1, script)
		if ts.World.Win || ts.World.GameOver {
			break
		}
	}
	if ts.World.DetectionLevel > maxDetection {
		maxDetection = ts.World.DetectionLevel
	}

	outcome := "timeout"
	switch {
	case ts.World.Win:
		outcome = "extracted"
	case ts.World.GameOver:
		outcome = "down"
	}

	return runStats{
		runIndex:             runIndex,
		seed:                 seed,
		outcome:              outcome,
		endTick:              ts.World.Tick,
		enemies:              len(ts.World.Enemies),
		killed:               len(ts.World.Enemies) - len(ts.World.LiveEnemies()),
		playerHP:             ts.World.Player.Health,
		maxDetection:         maxDetection,
		firstInvestigateTick: firstTick(ts.SimLog.Entries(), "state", "transition", "→ investigate"),
		firstChaseTick:       firstTick(ts.SimLog.Entries(), "state", "transition", "→ chase"),
		stateChanges:         ts.SimLog.CountCategory("state", "transition"),
		gunshots:             ts.SimLog.CountCategory("combat", "gunshot"),
		playerHits:           ts.SimLog.CountCategory("combat", "player_hit"),
		pickups:              ts.SimLog.CountCategory("pickup", "ammo"),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// isGhostRun reports whether a run finished as a clean ghost: extracted
// without any enemy ever entering chase.
func isGhostRun(rs runStats) bool {
	return rs.outcome == "extracted" && rs.firstChaseTick < 0 && rs.playerHits == 0
}

func countOutcomes(all []runStats) (extracted, down, timeout int) {
	for _, rs := range all {
		switch rs.outcome {
		case "extracted":
			extracted++
		case "down":
			down++
		default:
			timeout++
		}
	}
	return extracted, down, timeout
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s end_tick=%d player_hp=%d enemies=%d killed=%d\n",
		rs.outcome, rs.endTick, rs.playerHP, rs.enemies, rs.killed)
	fmt.Printf("detection_max=%.0f first_investigate=%s first_chase=%s\n",
		rs.maxDetection, tickString(rs.firstInvestigateTick), tickString(rs.firstChaseTick))
	fmt.Printf("event_totals: state_change=%d gunshot=%d player_hit=%d pickup=%d\n",
		rs.stateChanges, rs.gunshots, rs.playerHits, rs.pickups)
	if isGhostRun(rs) {
		fmt.Println("clean ghost run")
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	extracted, down, timeout := countOutcomes(all)
	ghosts := 0
	totalDetection := 0.0
	totalGunshots := 0
	totalState := 0
	investigateTicks := make([]int, 0, len(all))
	chaseTicks := make([]int, 0, len(all))
	for _, rs := range all {
		if isGhostRun(rs) {
			ghosts++
		}
		totalDetection += rs.maxDetection
		totalGunshots += rs.gunshots
		totalState += rs.stateChanges
		if rs.firstInvestigateTick >= 0 {
			investigateTicks = append(investigateTicks, rs.firstInvestigateTick)
		}
		if rs.firstChaseTick >= 0 {
			chaseTicks = append(chaseTicks, rs.firstChaseTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d extracted=%d down=%d timeout=%d ghost=%d\n",
		len(all), extracted, down, timeout, ghosts)
	fmt.Printf("avg_per_run: detection_max=%.1f gunshots=%.1f state_changes=%.1f\n",
		totalDetection/float64(len(all)),
		avg(totalGunshots, len(all)), avg(totalState, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_investigate=%s first_chase=%s\n",
		avgTickString(investigateTicks), avgTickString(chaseTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func tickString(v int) string {
	if v < 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", v)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
